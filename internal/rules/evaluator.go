/*
Copyright © 2025 changheonshin
*/
package rules

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Candidate is the slice of file metadata a rule can match against.
type Candidate struct {
	Path string
	MIME string
}

// Evaluator matches candidates against rules. Name patterns are compiled
// once and cached.
type Evaluator struct {
	patterns map[string]*regexp.Regexp
}

// NewEvaluator creates an Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{patterns: make(map[string]*regexp.Regexp)}
}

// Matches reports whether the candidate satisfies the rule's condition.
func (e *Evaluator) Matches(rule *Rule, c Candidate) (bool, error) {
	switch rule.Condition.Type {
	case ConditionExtension:
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(c.Path), "."))
		for _, want := range rule.Condition.Extensions {
			if ext == strings.ToLower(strings.TrimPrefix(want, ".")) {
				return true, nil
			}
		}
		return false, nil

	case ConditionMimePrefix:
		if c.MIME == "" {
			return false, nil
		}
		return strings.HasPrefix(c.MIME, rule.Condition.Prefix), nil

	case ConditionNamePattern:
		re, err := e.compile(rule.Condition.Pattern)
		if err != nil {
			return false, fmt.Errorf("rule %q: invalid pattern: %w", rule.Name, err)
		}
		return re.MatchString(filepath.Base(c.Path)), nil

	default:
		return false, fmt.Errorf("rule %q: unknown condition type %q", rule.Name, rule.Condition.Type)
	}
}

// FirstMatch returns the first enabled rule the candidate satisfies.
// Invalid rules are skipped, not fatal.
func (e *Evaluator) FirstMatch(ruleSet []Rule, c Candidate) (*Rule, bool) {
	for i := range ruleSet {
		rule := &ruleSet[i]
		if !rule.Enabled {
			continue
		}
		ok, err := e.Matches(rule, c)
		if err != nil {
			continue
		}
		if ok {
			return rule, true
		}
	}
	return nil, false
}

func (e *Evaluator) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := e.patterns[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	e.patterns[pattern] = re
	return re, nil
}
