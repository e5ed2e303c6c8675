package main

import (
	"os"
	"path/filepath"

	"github.com/skald-studio/skald/internal/cli"
	"github.com/skald-studio/skald/internal/doctor"
	"github.com/skald-studio/skald/internal/project"
)

func main() {
	projectDir := "."
	if len(os.Args) > 1 {
		projectDir = os.Args[1]
	}

	absProjectDir, err := filepath.Abs(projectDir)
	if err != nil {
		cli.PrintError("failed to resolve project directory: %v", err)
		os.Exit(1)
	}

	cli.PrintHeader("Skald Doctor")

	report := doctor.Run(absProjectDir)
	for _, check := range report.Checks {
		if check.OK {
			cli.PrintSuccess("%s", check.Name)
		} else {
			cli.PrintError("%s", check.Name)
		}
		for _, e := range check.Errors {
			cli.PrintFile("error: " + e)
		}
		for _, w := range check.Warnings {
			cli.PrintWarning("%s", w)
		}
	}

	if cfg, err := project.Load(absProjectDir); err == nil {
		for _, name := range doctor.Unreferenced(absProjectDir, cfg) {
			cli.PrintWarning("template %s is not referenced by any collection", name)
		}
	}

	if !report.Healthy() {
		os.Exit(1)
	}
	cli.PrintDone("Project looks good")
}
