// The student binary serves the study app: compiled to wasm it runs the
// browser UI, compiled natively it serves the bundle over HTTP.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/app/student"
	"github.com/bine130/pe-subnote/internal/config"
	"github.com/bine130/pe-subnote/internal/web"
)

func main() {
	app.Route("/", func() app.Composer { return &student.TopicsPage{} })
	app.Route("/login", func() app.Composer { return &student.LoginPage{} })
	app.RunWhenOnBrowser()

	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg := config.Load(*addr)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	handler := &app.Handler{
		Name:        "Subnote",
		ShortName:   "Subnote",
		Description: "Topic study app with notes, comments and bookmarks",
		Styles:      []string{"/web/app.css"},
		Env: map[string]string{
			"SUBNOTE_API_URL":  cfg.APIURL,
			"GOOGLE_CLIENT_ID": cfg.GoogleClientID,
		},
	}

	router := web.NewRouter(handler, logger)
	if err := web.Serve(cfg.Addr, router, logger); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
