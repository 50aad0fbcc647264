/*
Copyright © 2025 changheonshin
*/
package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	fs := afero.NewMemMapFs()
	cfg, err := New(fs, "/home/test/.parafile/config.json")
	require.NoError(t, err)
	return cfg
}

func TestNew_CreatesDefaultConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := New(fs, "/home/test/.parafile/config.json")
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/home/test/.parafile/config.json")
	require.NoError(t, err)
	assert.True(t, exists)

	provider := cfg.ActiveProvider()
	assert.Equal(t, "ollama", provider.Name)
	assert.Equal(t, "http://localhost:11434/api/generate", provider.URL)
	assert.Equal(t, "mistral", provider.Model)
}

func TestGetSetting_Default(t *testing.T) {
	cfg := newTestConfig(t)

	assert.Equal(t, "fallback", cfg.GetSetting("no_such_key", "fallback"))
	assert.Equal(t, true, cfg.GetBool("remove_empty_folders", false))
}

func TestCategoryFolder_Lookup(t *testing.T) {
	cfg := newTestConfig(t)

	assert.Equal(t, "1_projects/active", cfg.CategoryFolder("projects", "active"))
	assert.Equal(t, "4_archives/done", cfg.CategoryFolder("archives", "done"))
	assert.Equal(t, "5_other", cfg.CategoryFolder("other", "other"))
}

func TestCategoryFolder_FirstRunMatchesReload(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/test/.parafile/config.json"

	// First construction serves every folder from defaults; the second
	// reads the written file. Both must resolve identically.
	fresh, err := New(fs, path)
	require.NoError(t, err)
	reloaded, err := New(fs, path)
	require.NoError(t, err)

	for category, subs := range map[string][]string{
		"projects":  {"active", "next"},
		"areas":     {"work", "personal", "health"},
		"resources": {"references", "learning", "tools"},
		"archives":  {"done", "old"},
		"other":     {"other"},
	} {
		for _, sub := range subs {
			got := fresh.CategoryFolder(category, sub)
			assert.Equal(t, reloaded.CategoryFolder(category, sub), got, "%s/%s", category, sub)
			if category != "other" {
				assert.NotEqual(t, "5_other", got, "%s/%s must not fall back", category, sub)
			}
		}
	}
}

func TestCategoryFolder_UnknownFallsBackToOther(t *testing.T) {
	cfg := newTestConfig(t)

	assert.Equal(t, "5_other", cfg.CategoryFolder("projects", "nonexistent"))
	assert.Equal(t, "5_other", cfg.CategoryFolder("bogus", "bogus"))
}

func TestCategoryFolder_Korean(t *testing.T) {
	cfg := newTestConfig(t)
	require.NoError(t, cfg.Set("language", "korean"))

	assert.Equal(t, "1_프로젝트/진행중", cfg.CategoryFolder("projects", "active"))
	assert.Equal(t, "5_기타", cfg.CategoryFolder("other", "other"))
}

func TestObservers_NotifiedInRegistrationOrder(t *testing.T) {
	cfg := newTestConfig(t)

	var order []string
	cfg.Subscribe(func() { order = append(order, "first") })
	second := cfg.Subscribe(func() { order = append(order, "second") })

	require.NoError(t, cfg.Set("language", "korean"))
	assert.Equal(t, []string{"first", "second"}, order)

	cfg.Unsubscribe(second)
	order = nil
	require.NoError(t, cfg.Set("language", "english"))
	assert.Equal(t, []string{"first"}, order)
}

func TestNew_ReloadsPersistedValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/test/.parafile/config.json"

	cfg, err := New(fs, path)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("backup_enabled", true))

	reloaded, err := New(fs, path)
	require.NoError(t, err)
	assert.True(t, reloaded.GetBool("backup_enabled", false))
}
