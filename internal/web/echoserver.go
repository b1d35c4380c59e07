//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/m-kellner/RumorLensGo/internal/enc"
	"github.com/m-kellner/RumorLensGo/internal/lnch"
	"github.com/m-kellner/RumorLensGo/internal/mdl"
	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// THE ECHO SERVER
//

// Server - the trained model plus everything the routes need to use it
type Server struct {
	Model   *mdl.Model
	Encoder enc.TextEncoder
}

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer(srv *Server) {
	// https://echo.labstack.com/guide/

	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "i: ${remote_ip}\t r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		MSG1    = "%s (v%s) is listening on %s:%d"
	)

	//
	// SETUP
	//

	e := echo.New()
	e.HideBanner = true

	if lnch.Config.EchoLog == 3 {
		e.Use(middleware.Logger())
	} else if lnch.Config.EchoLog == 2 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT}))
	} else if lnch.Config.EchoLog == 1 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECONDPERIP)))

	e.Use(middleware.Recover())

	if lnch.Config.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// ROUTES
	//

	// [a] frontpage ("rt-frontpage.go")

	e.GET("/", RtFrontpage)

	// [b] classification ("rt-classify.go")

	e.POST("/classify", srv.RtClassify)

	// [c] generated artifacts ("rt-artifacts.go")

	e.GET("/artifacts/:name", RtArtifact)

	mm.Msg(fmt.Sprintf(MSG1, vv.MYNAME, vv.VERSION, lnch.Config.HostIP, lnch.Config.HostPort), mm.MSGMAND)

	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", lnch.Config.HostIP, lnch.Config.HostPort)))
}
