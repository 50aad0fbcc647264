/*
Copyright © 2025 changheonshin
*/

// Package config provides the application configuration consumed by the
// classification and organization core. The configuration is an explicitly
// constructed object passed into component constructors; nothing here is a
// process-wide singleton.
package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultFileName is the config file created on first run.
const DefaultFileName = "config.json"

// ProviderConfig holds the settings of one LLM provider entry.
type ProviderConfig struct {
	Name    string
	URL     string
	Model   string
	APIKey  string
	Timeout int // seconds
}

// OrgRules mirrors the organization_rules block of the config document.
type OrgRules struct {
	UseContentAnalysis bool
	UseDate            bool
	SmartRenameEnabled bool
	// MinConfidenceScore is read for telemetry only; it does not gate
	// any organization decision.
	MinConfidenceScore float64
}

// ObserverHandle identifies a registered change observer.
type ObserverHandle int

type observer struct {
	id ObserverHandle
	fn func()
}

// Config wraps a dedicated viper instance bound to a JSON config document.
type Config struct {
	v    *viper.Viper
	fs   afero.Fs
	path string

	mu        sync.Mutex
	observers []observer
	nextID    ObserverHandle
}

// New loads the configuration from path, creating the file with defaults
// if it does not exist.
func New(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	setDefaults(v)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}

	c := &Config{v: v, fs: fs, path: path}

	if !exists {
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := v.WriteConfigAs(path); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		return c, nil
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return c, nil
}

// GetSetting returns the value for key, or def if the key is absent.
func (c *Config) GetSetting(key string, def any) any {
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.Get(key)
}

// GetString returns a string setting with a default.
func (c *Config) GetString(key, def string) string {
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.GetString(key)
}

// GetInt returns an integer setting with a default.
func (c *Config) GetInt(key string, def int) int {
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.GetInt(key)
}

// GetBool returns a boolean setting with a default.
func (c *Config) GetBool(key string, def bool) bool {
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.GetBool(key)
}

// Set updates a setting, persists the document and notifies observers in
// registration order.
func (c *Config) Set(key string, value any) error {
	c.v.Set(key, value)
	if err := c.v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	c.notify()
	return nil
}

// SetTransient updates a setting for this process only; the document on
// disk is not touched and observers are not notified. Used for CLI flag
// overrides.
func (c *Config) SetTransient(key string, value any) {
	c.v.Set(key, value)
}

// Subscribe registers a change observer and returns a handle for removal.
func (c *Config) Subscribe(fn func()) ObserverHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.observers = append(c.observers, observer{id: c.nextID, fn: fn})
	return c.nextID
}

// Unsubscribe removes a previously registered observer.
func (c *Config) Unsubscribe(h ObserverHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, o := range c.observers {
		if o.id == h {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

func (c *Config) notify() {
	c.mu.Lock()
	observers := make([]observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, o := range observers {
		o.fn()
	}
}

// ActiveProvider returns the configuration of the currently selected LLM
// provider.
func (c *Config) ActiveProvider() ProviderConfig {
	name := c.v.GetString("llm_config.default_provider")
	if name == "" {
		name = "ollama"
	}
	base := "llm_config.providers." + name
	return ProviderConfig{
		Name:    name,
		URL:     c.v.GetString(base + ".url"),
		Model:   c.v.GetString(base + ".default_model"),
		APIKey:  c.v.GetString(base + ".api_key"),
		Timeout: c.v.GetInt(base + ".timeout_seconds"),
	}
}

// OrganizationRules returns the organization rule switches.
func (c *Config) OrganizationRules() OrgRules {
	return OrgRules{
		UseContentAnalysis: c.GetBool("organization_rules.use_content_analysis", true),
		UseDate:            c.GetBool("organization_rules.use_date", false),
		SmartRenameEnabled: c.GetBool("organization_rules.smart_rename_enabled", true),
		MinConfidenceScore: c.v.GetFloat64("organization_rules.min_confidence_score"),
	}
}

// Language returns the configured folder-name language.
func (c *Config) Language() string {
	return c.GetString("language", "english")
}

// CategoryFolder resolves the localized folder path for a category and
// subcategory. Unknown combinations fall back to the other/other folder,
// which is guaranteed to exist in the defaults.
func (c *Config) CategoryFolder(category, subcategory string) string {
	lang := c.Language()
	key := fmt.Sprintf("category_names.%s.%s.%s", lang, category, subcategory)
	if folder := c.v.GetString(key); folder != "" {
		return folder
	}
	fallback := fmt.Sprintf("category_names.%s.other.other", lang)
	if folder := c.v.GetString(fallback); folder != "" {
		return folder
	}
	return "5_other"
}

// Path returns the location of the backing config file.
func (c *Config) Path() string {
	return c.path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm_config.default_provider", "ollama")
	v.SetDefault("llm_config.providers.ollama.url", "http://localhost:11434/api/generate")
	v.SetDefault("llm_config.providers.ollama.default_model", "mistral")
	v.SetDefault("llm_config.providers.ollama.timeout_seconds", 15)
	v.SetDefault("llm_config.providers.openrouter.url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("llm_config.providers.openrouter.default_model", "openai/gpt-3.5-turbo")
	v.SetDefault("llm_config.providers.openrouter.api_key", "")
	v.SetDefault("llm_config.providers.openrouter.timeout_seconds", 30)
	v.SetDefault("llm_config.providers.gemini.default_model", "gemini-1.5-flash")
	v.SetDefault("llm_config.providers.gemini.api_key", "")

	v.SetDefault("max_file_size_mb", 1)
	v.SetDefault("backup_enabled", false)
	v.SetDefault("remove_empty_folders", true)
	v.SetDefault("ascii_filenames", false)
	v.SetDefault("language", "english")

	v.SetDefault("organization_rules.use_content_analysis", true)
	v.SetDefault("organization_rules.use_date", false)
	v.SetDefault("organization_rules.smart_rename_enabled", true)
	v.SetDefault("organization_rules.min_confidence_score", 0.7)

	// Registered leaf by leaf: viper only resolves defaults through
	// untyped nested maps, so a typed map value would be invisible to
	// Get until the file is read back.
	for lang, categories := range defaultCategoryNames {
		for category, subs := range categories {
			for sub, folder := range subs {
				v.SetDefault(fmt.Sprintf("category_names.%s.%s.%s", lang, category, sub), folder)
			}
		}
	}
}

var defaultCategoryNames = map[string]map[string]map[string]string{
	"english": {
		"projects": {
			"active": "1_projects/active",
			"next":   "1_projects/next",
		},
		"areas": {
			"work":     "2_areas/work",
			"personal": "2_areas/personal",
			"health":   "2_areas/health",
		},
		"resources": {
			"references": "3_resources/references",
			"learning":   "3_resources/learning",
			"tools":      "3_resources/tools",
		},
		"archives": {
			"done": "4_archives/done",
			"old":  "4_archives/old",
		},
		"other": {
			"other": "5_other",
		},
	},
	"korean": {
		"projects": {
			"active": "1_프로젝트/진행중",
			"next":   "1_프로젝트/예정",
		},
		"areas": {
			"work":     "2_영역/업무",
			"personal": "2_영역/개인",
			"health":   "2_영역/건강",
		},
		"resources": {
			"references": "3_자료/참고자료",
			"learning":   "3_자료/학습",
			"tools":      "3_자료/도구",
		},
		"archives": {
			"done": "4_보관/완료",
			"old":  "4_보관/과거",
		},
		"other": {
			"other": "5_기타",
		},
	},
}
