/*
Copyright © 2025 changheonshin
*/
package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSkipPatterns(t *testing.T) {
	patterns := GetSkipPatterns()

	assert.Greater(t, len(patterns), 0, "Should return at least one skip pattern")
	assert.Contains(t, patterns, ".git")
	assert.Contains(t, patterns, "node_modules")

	switch runtime.GOOS {
	case "darwin":
		assert.Contains(t, patterns, ".Trash")
		assert.Contains(t, patterns, ".fseventsd")
	case "linux":
		assert.Contains(t, patterns, "proc")
		assert.Contains(t, patterns, ".cache")
	case "windows":
		assert.Contains(t, patterns, "$Recycle.Bin")
	}
}

func TestShouldSkipPath(t *testing.T) {
	patterns := []string{".git", "node_modules", ".Trash"}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"git directory", "/home/user/project/.git", true},
		{"node modules", "/home/user/app/node_modules", true},
		{"trash", "/Users/someone/.Trash", true},
		{"regular directory", "/home/user/documents", false},
		{"hidden near root", "/home/user/.ssh", true},
		{"deeply nested hidden allowed", "/home/user/a/b/c/.config", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldSkipPath(filepath.FromSlash(tt.path), patterns))
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandHome("~/documents")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "documents"), expanded)

	bare, err := ExpandHome("~")
	require.NoError(t, err)
	assert.Equal(t, home, bare)

	plain, err := ExpandHome("/var/data")
	require.NoError(t, err)
	assert.Equal(t, "/var/data", plain)
}
