/*
Copyright © 2025 changheonshin
*/
package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GetSkipPatterns returns directory names that organization should never
// descend into. The list is OS specific and always includes common
// development directories, which are managed by their own tooling.
func GetSkipPatterns() []string {
	common := []string{".git", "node_modules", ".venv", "__pycache__"}

	switch runtime.GOOS {
	case "darwin":
		return append(common,
			".Trash", ".Trashes",
			".fseventsd",
			".Spotlight-V100",
			".DocumentRevisions-V100",
			".TemporaryItems",
			".DS_Store",
			"Library/Caches",
		)
	case "linux":
		return append(common,
			".cache", ".local/share/Trash",
			"proc", "sys", "dev",
			"tmp", "var/tmp",
		)
	case "windows":
		return append(common,
			"$Recycle.Bin",
			"System Volume Information",
		)
	default:
		return append(common, ".Trash", ".cache", "tmp")
	}
}

// ShouldSkipPath checks if a path matches one of the skip patterns. Hidden
// directories near the filesystem root are also skipped.
func ShouldSkipPath(path string, skipPatterns []string) bool {
	pathBase := filepath.Base(path)

	for _, pattern := range skipPatterns {
		if strings.Contains(path, pattern) || pathBase == pattern {
			return true
		}
	}

	if strings.HasPrefix(pathBase, ".") && strings.Count(path, string(filepath.Separator)) <= 3 {
		return true
	}

	return false
}

// ExpandHome resolves a leading ~ to the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/")), nil
	}
	return path, nil
}
