package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dslyaml"
)

// appName is the single source of truth for the application name.
// All derived identifiers (env vars, config paths, error messages) are computed from it.
const appName = "jsxpdf"

var (
	envConfigDir  = strings.ToUpper(appName) + "_CONFIG_DIR"
	envComponents = strings.ToUpper(appName) + "_COMPONENTS"
)

// resolveConfigDir returns the base config directory for the application.
// Priority: $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveComponentDirs returns all directories to scan for component libraries.
// Order: configDir/components → $<APPNAME>_COMPONENTS → flagDirs
func resolveComponentDirs(configDir string, flagDirs []string) []string {
	dirs := []string{filepath.Join(configDir, "components")}
	dirs = append(dirs, splitColon(os.Getenv(envComponents))...)
	dirs = append(dirs, flagDirs...)
	return dirs
}

// splitColon splits a colon-separated string, filtering empty parts.
func splitColon(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadLibraries parses every component library in dirs. Missing directories
// are skipped.
func loadLibraries(dirs []string) ([]dslyaml.Document, error) {
	var docs []dslyaml.Document
	for _, dir := range dirs {
		found, err := dslyaml.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("component directory %s: %w", dir, err)
		}
		for _, d := range found {
			if d.Document != nil {
				return nil, fmt.Errorf("component directory %s: library files cannot define a document", dir)
			}
		}
		docs = append(docs, found...)
	}
	return docs, nil
}
