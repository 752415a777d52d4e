// The admin binary serves the management console.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/app/admin"
	"github.com/bine130/pe-subnote/internal/config"
	"github.com/bine130/pe-subnote/internal/web"
)

func main() {
	app.Route("/", func() app.Composer { return &admin.Console{} })
	app.Route("/login", func() app.Composer { return &admin.LoginPage{} })
	app.RunWhenOnBrowser()

	addr := flag.String("addr", ":8081", "listen address")
	flag.Parse()

	cfg := config.Load(*addr)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	handler := &app.Handler{
		Name:        "Subnote Admin",
		ShortName:   "Subnote Admin",
		Description: "Management console for topics, categories, templates and users",
		Styles:      []string{"/web/admin.css"},
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
