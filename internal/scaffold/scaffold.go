// Package scaffold creates a new site from the embedded starter template.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/skald-studio/skald/internal/cli"
)

//go:embed all:starter
var starterFS embed.FS

type TemplateData struct {
	Title string
}

// ProcessFilename strips the .tmpl marker from files that get placeholder
// substitution.
func ProcessFilename(filename string) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}

	result := string(content)
	result = strings.ReplaceAll(result, "{{.Title}}", data.Title)

	return []byte(result)
}

// DeriveTitle guesses a site title from the project directory name.
func DeriveTitle(projectDir string) string {
	base := filepath.Base(projectDir)
	if base == "." || base == "/" || base == "" {
		return "My Site"
	}
	return base
}

// Run writes the starter site into projectDir, which must be empty or
// missing.
func Run(projectDir string) error {
	cli.PrintHeader("Skald Init")

	if _, err := os.Stat(projectDir); err == nil {
		entries, err := os.ReadDir(projectDir)
		if err != nil {
			return fmt.Errorf("failed to read directory: %w", err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("directory '%s' already exists and is not empty", projectDir)
		}
	}

	templateFS, err := fs.Sub(starterFS, "starter")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data := TemplateData{
		Title: DeriveTitle(projectDir),
	}

	createdCount := 0

	err = fs.WalkDir(templateFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			targetDir := filepath.Join(projectDir, path)
			if err := os.MkdirAll(targetDir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
			}
			return nil
		}

		content, err := fs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		targetPath, isTemplate := ProcessFilename(path)
		targetPath = filepath.Join(projectDir, targetPath)

		processedContent := ProcessContent(content, isTemplate, data)

		if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", targetPath, err)
		}

		if err := os.WriteFile(targetPath, processedContent, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			cli.PrintFile(targetPath + " (generated)")
		} else {
			cli.PrintFile(targetPath)
		}
		createdCount++

		return nil
	})
	if err != nil {
		return err
	}

	cli.PrintSuccess("Created %d file(s)", createdCount)
	cli.PrintDone("Site ready. Run: SKALD_DEV=1 skald-serve " + projectDir)
	return nil
}
