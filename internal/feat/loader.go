//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package feat

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/m-kellner/RumorLensGo/internal/cls"
	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/str"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// TSV INGESTION
//

// the input is tab-separated with a header row; the header decides which
// column is which, so column order in the file is free

// LoadPosts - read a TSV of posts; labels are required iff wantlabels is set
func LoadPosts(path string, wantlabels bool) ([]str.PostRecord, error) {
	const (
		FAIL1 = "LoadPosts() could not find the '%s' column in '%s'"
		FAIL2 = "LoadPosts() found nothing but a header in '%s'"
		MSG1  = "loaded %d posts from '%s' (skipped %d short rows)"
	)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf(FAIL2, path)
	}

	header := strings.Split(lines[0], "\t")
	idcol := columnindex(header, vv.COLPOSTID)
	textcol := columnindex(header, vv.COLPOSTTEXT)
	labelcol := columnindex(header, vv.COLLABEL)

	if idcol < 0 {
		return nil, fmt.Errorf(FAIL1, vv.COLPOSTID, path)
	}
	if textcol < 0 {
		return nil, fmt.Errorf(FAIL1, vv.COLPOSTTEXT, path)
	}
	if wantlabels && labelcol < 0 {
		return nil, fmt.Errorf(FAIL1, vv.COLLABEL, path)
	}

	need := idcol
	if textcol > need {
		need = textcol
	}
	if wantlabels && labelcol > need {
		need = labelcol
	}

	var posts []str.PostRecord
	skipped := 0

	for _, ln := range lines[1:] {
		if ln == "" {
			continue
		}
		fields := strings.Split(ln, "\t")
		if len(fields) <= need {
			skipped++
			continue
		}

		p := str.PostRecord{
			ID:    strings.TrimSpace(fields[idcol]),
			Text:  strings.TrimSpace(fields[textcol]),
			Label: -1,
		}

		if wantlabels {
			lab, err := cls.CanonicalLabel(fields[labelcol])
			if err != nil {
				return nil, err
			}
			p.Label = lab
		}

		posts = append(posts, p)
	}

	pr := message.NewPrinter(language.English)
	mm.Msg(pr.Sprintf(MSG1, len(posts), path, skipped), mm.MSGNOTE)

	return posts, nil
}

// columnindex - find a named header column; -1 when absent
func columnindex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Split - deterministic head/tail split for train vs validation
func Split[T any](items []T, valfrac float64) ([]T, []T) {
	if valfrac <= 0 || valfrac >= 1 || len(items) < 2 {
		return items, nil
	}
	cut := len(items) - int(float64(len(items))*valfrac)
	if cut < 1 {
		cut = 1
	}
	if cut >= len(items) {
		cut = len(items) - 1
	}
	return items[:cut], items[cut:]
}
