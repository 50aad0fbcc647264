/*
Copyright © 2025 changheonshin
*/
package rules

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const configVersion = "1.0"

// Manager loads and persists the rules file.
type Manager struct {
	fs   afero.Fs
	path string
}

// NewManager creates a Manager bound to a rules file path.
func NewManager(fs afero.Fs, path string) *Manager {
	return &Manager{fs: fs, path: path}
}

// Path returns the location of the rules file.
func (m *Manager) Path() string { return m.path }

// Load reads the rules file. A missing file yields an empty config, not
// an error.
func (m *Manager) Load() (*RulesConfig, error) {
	exists, err := afero.Exists(m.fs, m.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &RulesConfig{Version: configVersion}, nil
	}

	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = configVersion
	}
	return &cfg, nil
}

// Save writes the rules file, creating parent directories as needed.
func (m *Manager) Save(cfg *RulesConfig) error {
	if err := m.fs.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize rules: %w", err)
	}
	return afero.WriteFile(m.fs, m.path, data, 0o644)
}

// Init writes the default rule set unless a rules file already exists.
func (m *Manager) Init() error {
	exists, err := afero.Exists(m.fs, m.path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("rules file already exists: %s", m.path)
	}
	return m.Save(&RulesConfig{Version: configVersion, Rules: DefaultRules()})
}

// Add validates and appends a rule. Duplicate names are rejected.
func (m *Manager) Add(rule Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	cfg, err := m.Load()
	if err != nil {
		return err
	}
	for _, existing := range cfg.Rules {
		if existing.Name == rule.Name {
			return fmt.Errorf("rule %q already exists", rule.Name)
		}
	}

	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	cfg.Rules = append(cfg.Rules, rule)
	return m.Save(cfg)
}

// SetEnabled toggles a rule by name.
func (m *Manager) SetEnabled(name string, enabled bool) error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}
	for i := range cfg.Rules {
		if cfg.Rules[i].Name == name {
			cfg.Rules[i].Enabled = enabled
			cfg.Rules[i].UpdatedAt = time.Now()
			return m.Save(cfg)
		}
	}
	return fmt.Errorf("rule %q not found", name)
}

// Enabled returns the enabled rules in file order.
func (m *Manager) Enabled() ([]Rule, error) {
	cfg, err := m.Load()
	if err != nil {
		return nil, err
	}
	var out []Rule
	for _, rule := range cfg.Rules {
		if rule.Enabled {
			out = append(out, rule)
		}
	}
	return out, nil
}

// DefaultRules is the starter rule set written by Init.
func DefaultRules() []Rule {
	now := time.Now()
	mk := func(name, desc string, cond Condition, action Action) Rule {
		return Rule{
			Name:        name,
			Description: desc,
			Enabled:     true,
			Condition:   cond,
			Action:      action,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	return []Rule{
		mk("images", "Organize image files by year/month",
			Condition{Type: ConditionMimePrefix, Prefix: "image/"},
			Action{Type: ActionByDate, TargetDir: "Images"}),
		mk("documents", "Organize documents by type",
			Condition{Type: ConditionExtension, Extensions: []string{"pdf", "doc", "docx", "txt"}},
			Action{Type: ActionByType, TargetDir: "Documents"}),
		mk("code", "Organize code files by language",
			Condition{Type: ConditionExtension, Extensions: []string{"py", "js", "java", "cpp"}},
			Action{Type: ActionByLanguage, TargetDir: "Code"}),
	}
}
