// Package cache provides centralized cache directory resolution for uipack.
//
// Priority order: --cache-dir flag > UIPACK_CACHE_DIR env > ~/.uipack default.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// EnvCacheDir overrides the default cache root.
const EnvCacheDir = "UIPACK_CACHE_DIR"

var global struct {
	version    string
	rawVersion string
	cacheDir   string
}

// SetGlobal initializes the cache resolver with the CLI version.
// This should be called at startup from root.go.
func SetGlobal(version string) {
	global.rawVersion = strings.TrimSpace(version)
	global.version = NormalizeVersion(version)
}

// NormalizeVersion returns a clean release version, or empty if the version
// is not a valid release (e.g., dev builds, pseudo-versions from go install).
// Explicit prerelease tags (v0.2.0-rc1) are allowed.
//
// Examples:
//
//	"v0.1.0"                          -> "v0.1.0"
//	"0.1.0"                           -> "v0.1.0"
//	"uipack-v0.1.0"                   -> "v0.1.0"
//	"v0.2.0-rc1"                      -> "v0.2.0-rc1" (prerelease allowed)
//	"0.1.0-dev"                       -> "" (dev build)
//	"v0.2.1-0.20260122153045-abc123"  -> "" (pseudo-version)
func NormalizeVersion(version string) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "uipack-")
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if semver.Canonical(version) != version {
		// Rejects v1.2, build metadata and anything unparsable.
		return ""
	}
	if semver.Prerelease(version) == "-dev" || module.IsPseudoVersion(version) {
		return ""
	}
	return version
}

// Version returns the normalized CLI version, or the raw one for
// non-release builds.
func Version() string {
	if global.version != "" {
		return global.version
	}
	return global.rawVersion
}

// SetCacheDir sets an override for the cache directory.
// This is typically called when parsing the --cache-dir flag.
func SetCacheDir(dir string) {
	global.cacheDir = dir
}

// Root returns the cache root directory.
// Priority: --cache-dir flag > UIPACK_CACHE_DIR env > ~/.uipack default.
func Root() (string, error) {
	if global.cacheDir != "" {
		return global.cacheDir, nil
	}

	if envDir := os.Getenv(EnvCacheDir); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".uipack"), nil
}

// StorePath returns the package database path, creating the cache root
// if needed. Returns: <cache_root>/packages.db
func StorePath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return filepath.Join(root, "packages.db"), nil
}
