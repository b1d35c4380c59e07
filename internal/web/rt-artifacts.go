//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// GENERATED ARTIFACTS
//

// the artifact names are a fixed enumeration; anything else is a 404, so
// this route cannot be walked into serving arbitrary files

var knownartifacts = map[string]bool{
	vv.LDASCATTERFILE: true,
	vv.LDAWORDCLOUD:   true,
	vv.LDAHEATMAPFILE: true,
}

// RtArtifact - serve one of the generated html visualizations
func RtArtifact(c echo.Context) error {
	const (
		FAIL1 = "unknown artifact"
	)

	name := c.Param("name")
	if !knownartifacts[name] {
		return echo.NewHTTPError(http.StatusNotFound, FAIL1)
	}
	return c.File(name)
}
