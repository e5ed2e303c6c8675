// Package core holds the pure decision logic: modes, route patterns,
// pagination math, manifests. Nothing here touches the network or the
// filesystem, so every rule is directly testable.
package core

import (
	"errors"
	"os"
)

// Mode selects how the site runs. Prod is the default; SKALD_DEV=1 switches
// to live rendering with reload, SKALD_EXPORT=<dir> renders the site to disk
// and exits.
type Mode int

const (
	ModeProd Mode = iota
	ModeDev
	ModeExport
)

const (
	devEnvVar    = "SKALD_DEV"
	exportEnvVar = "SKALD_EXPORT"
)

var (
	ErrMissingParam      = errors.New("missing route param")
	ErrLoaderRequired    = errors.New("placeholder route needs a static paths loader")
	ErrDuplicateRoute    = errors.New("duplicate route path")
	ErrTemplateRequired  = errors.New("route needs a template")
)

// DetectMode reads the environment. Export wins over dev so CI can build a
// site whose dev flag is still set.
func DetectMode() Mode {
	if os.Getenv(exportEnvVar) != "" {
		return ModeExport
	}
	if os.Getenv(devEnvVar) == "1" {
		return ModeDev
	}
	return ModeProd
}

// ExportDir returns the output directory requested via SKALD_EXPORT.
func ExportDir() string {
	return os.Getenv(exportEnvVar)
}

func IsDev() bool {
	return DetectMode() == ModeDev
}

func IsProd() bool {
	return DetectMode() == ModeProd
}
