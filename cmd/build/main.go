package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/skald-studio/skald/internal/cli"
	"github.com/skald-studio/skald/internal/project"
)

func main() {
	projectDir := flag.String("C", ".", "project directory")
	outDir := flag.String("o", "", "output directory (default: outputDir from skald.yaml)")
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

	if err := app.Export(context.Background(), *outDir); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
