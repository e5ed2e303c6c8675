package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/skald-studio/skald/internal/cli"
	"github.com/skald-studio/skald/internal/project"
)

func main() {
	projectDir := flag.String("C", ".", "project directory")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := project.Load(*projectDir)
	if err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}

	app, err := project.Assemble(*projectDir, cfg)
	if err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
	defer app.Stop()

	slog.Info("serving site", "title", cfg.Title, "addr", *addr)
	if err := http.ListenAndServe(*addr, app.Handler()); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
