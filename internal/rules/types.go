/*
Copyright © 2025 changheonshin
*/

// Package rules implements the rule-driven organization mode: user-defined
// rules that match files by extension, MIME type or name pattern and
// folder them under a target directory without asking the LLM. Rules are
// persisted as YAML and evaluated first-match-wins.
package rules

import (
	"fmt"
	"time"
)

// Rule folders matching files under its action's target directory.
type Rule struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Enabled     bool      `yaml:"enabled"`
	Condition   Condition `yaml:"condition"`
	Action      Action    `yaml:"action"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// ConditionType selects how a rule matches files.
type ConditionType string

const (
	ConditionExtension   ConditionType = "extension"
	ConditionMimePrefix  ConditionType = "mime_prefix"
	ConditionNamePattern ConditionType = "name_pattern"
)

// Condition is the matching half of a rule. Exactly one of Extensions,
// Prefix or Pattern is consulted, depending on Type.
type Condition struct {
	Type ConditionType `yaml:"type"`
	// Extensions lists file extensions (with or without the leading dot)
	// for ConditionExtension.
	Extensions []string `yaml:"extensions,omitempty"`
	// Prefix is a MIME type prefix such as "image/" for ConditionMimePrefix.
	Prefix string `yaml:"prefix,omitempty"`
	// Pattern is a regular expression matched against the base name for
	// ConditionNamePattern.
	Pattern string `yaml:"pattern,omitempty"`
}

// ActionType selects how a matched file is foldered under the target
// directory.
type ActionType string

const (
	// ActionByType folders by uppercased extension ("PDF", "DOCX").
	ActionByType ActionType = "by_type"
	// ActionByDate folders by modification time as year/month.
	ActionByDate ActionType = "by_date"
	// ActionByLanguage folders code files by programming language name.
	ActionByLanguage ActionType = "by_language"
)

// Action is the foldering half of a rule. An empty Type means ActionByType.
type Action struct {
	Type      ActionType `yaml:"type,omitempty"`
	TargetDir string     `yaml:"target_dir"`
}

// RulesConfig represents the rules file structure.
type RulesConfig struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Validate checks that a rule is well formed.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule name is required")
	}

	switch r.Condition.Type {
	case ConditionExtension:
		if len(r.Condition.Extensions) == 0 {
			return fmt.Errorf("rule %q: extension condition needs at least one extension", r.Name)
		}
	case ConditionMimePrefix:
		if r.Condition.Prefix == "" {
			return fmt.Errorf("rule %q: mime_prefix condition needs a prefix", r.Name)
		}
	case ConditionNamePattern:
		if r.Condition.Pattern == "" {
			return fmt.Errorf("rule %q: name_pattern condition needs a pattern", r.Name)
		}
	default:
		return fmt.Errorf("rule %q: unknown condition type %q", r.Name, r.Condition.Type)
	}

	switch r.Action.Type {
	case "", ActionByType, ActionByDate, ActionByLanguage:
	default:
		return fmt.Errorf("rule %q: unknown action type %q", r.Name, r.Action.Type)
	}
	if r.Action.TargetDir == "" {
		return fmt.Errorf("rule %q: action needs a target directory", r.Name)
	}
	return nil
}
