//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// FRONTPAGE
//

const frontpagetemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<h1>%s (v%s)</h1>
<p>POST <code>/classify</code> with <code>{"text": "..."}</code> to classify a post.</p>
<h2>artifacts</h2>
<ul>
%s</ul>
</body>
</html>
`

// RtFrontpage - a minimal index naming the api and whatever artifacts exist
func RtFrontpage(c echo.Context) error {
	const (
		ITEM = "<li><a href=\"/artifacts/%s\">%s</a></li>\n"
		NONE = "<li>none generated yet; run the 'topics' subcommand</li>\n"
	)

	items := ""
	for _, name := range []string{vv.LDASCATTERFILE, vv.LDAWORDCLOUD, vv.LDAHEATMAPFILE} {
		if _, err := os.Stat(name); err == nil {
			items += fmt.Sprintf(ITEM, name, name)
		}
	}
	if items == "" {
		items = NONE
	}

	page := fmt.Sprintf(frontpagetemplate, vv.MYNAME, vv.MYNAME, vv.VERSION, items)
	return c.HTML(http.StatusOK, page)
}
