package app

import (
	"path/filepath"

	"github.com/xxxsen/skingallery/internal/config"
)

const (
	configFlag          = "config"
	defaultManifestPath = "data/manifest.json"
)

// loadConfig reads the explicit config file, or the first default one found.
// Without any file the defaults and SKINGALLERY_* environment still apply.
func loadConfig(explicit string) (*config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}
	return config.LoadFirst(config.DefaultSearchPaths...)
}

// resolvePath makes a relative path relative to the repo root.
func resolvePath(repoRoot, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(repoRoot, p)
}
