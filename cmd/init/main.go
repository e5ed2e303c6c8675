package main

import (
	"os"

	"github.com/skald-studio/skald/internal/cli"
	"github.com/skald-studio/skald/internal/scaffold"
)

func main() {
	projectDir := "."
	if len(os.Args) > 1 {
		projectDir = os.Args[1]
	}

	if err := scaffold.Run(projectDir); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
