// Package scope defines the installation layers an element can live in
// (global, project, local) and resolves each layer to its base directory.
// Resolution order for every layer: environment override, config key,
// built-in default.
package scope

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elemdex-labs/elemdex/internal/branding"
	"github.com/elemdex-labs/elemdex/internal/config"
)

// Scope identifies the layer at which an element is installed.
type Scope string

const (
	Global  Scope = "global"
	Project Scope = "project"
	Local   Scope = "local"

	// All is a query filter value. It is never stored on an entry.
	All Scope = "all"
)

// localDirSuffix distinguishes the local layer's dot-directory from the
// project layer's (.elemdex vs .elemdex.local).
const localDirSuffix = ".local"

// Known returns the storable scopes in precedence order (local overrides
// project overrides global is a UI concern; the order here is stable for
// deterministic iteration).
func Known() []Scope {
	return []Scope{Global, Project, Local}
}

// Valid reports whether s names a storable scope.
func Valid(s Scope) bool {
	switch s {
	case Global, Project, Local:
		return true
	}
	return false
}

// ValidFilter reports whether s is usable as a query filter (a storable
// scope or All).
func ValidFilter(s Scope) bool {
	return s == All || Valid(s)
}

// Root resolves a storable scope to its absolute base directory.
// The directory is not required to exist.
func Root(s Scope) (string, error) {
	switch s {
	case Global:
		return globalRoot()
	case Project:
		return projectRoot()
	case Local:
		return localRoot()
	}
	return "", fmt.Errorf("scope %q has no base directory", s)
}

// globalRoot returns the global scope root, by default ~/.elemdex.
func globalRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("GLOBAL_ROOT")); v != "" {
		return v, nil
	}
	if v := config.Get("scopes.global"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// projectRoot returns the project scope root: the nearest ancestor
// .elemdex directory starting from the working directory, or
// <cwd>/.elemdex when no ancestor has one.
func projectRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("PROJECT_ROOT")); v != "" {
		return v, nil
	}
	if v := config.Get("scopes.project"); v != "" {
		return v, nil
	}
	base, err := projectBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, branding.HomeDir()), nil
}

// localRoot returns the local scope root, a sibling of the project root
// (by default <project>/.elemdex.local).
func localRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("LOCAL_ROOT")); v != "" {
		return v, nil
	}
	if v := config.Get("scopes.local"); v != "" {
		return v, nil
	}
	base, err := projectBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, branding.HomeDir()+localDirSuffix), nil
}

// projectBase walks up from the working directory looking for an existing
// .elemdex directory and returns the directory containing it. Falls back
// to the working directory itself.
func projectBase() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}

	dir := cwd
	for {
		marker := filepath.Join(dir, branding.HomeDir())
		if fi, err := os.Stat(marker); err == nil && fi.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}
