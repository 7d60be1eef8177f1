// pattern: Functional Core

package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand expands a leading home directory shorthand (~ or ~/...) and
// environment variables in path. Relative paths stay relative; a path that
// cannot be expanded is returned unchanged.
func Expand(path string) string {
	return ExpandWith(path, os.UserHomeDir, os.Getenv)
}

// ExpandWith is Expand with injectable home and environment lookups.
func ExpandWith(path string, home func() (string, error), getenv func(string) string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if dir, err := home(); err == nil && dir != "" {
			path = filepath.Join(dir, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.Expand(path, getenv)
}

// Basename returns the final path segment, or path itself when it has none
// (empty string or a bare separator).
func Basename(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return path
	}
	return base
}
