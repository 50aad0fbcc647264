/*
Copyright © 2025 changheonshin
*/
package rules

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// codeLanguages maps source file extensions to language folder names for
// ActionByLanguage. Unknown extensions fall back to the uppercased
// extension.
var codeLanguages = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".java":  "Java",
	".cpp":   "C++",
	".cs":    "C#",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".go":    "Go",
}

// Executor resolves files against a rule set. It satisfies the analyzer's
// pre-classifier hook: a matching rule routes the file to a fixed folder
// and short-circuits the LLM round-trip.
type Executor struct {
	fs    afero.Fs
	rules []Rule
	eval  *Evaluator
}

// NewExecutor creates an Executor over a fixed rule set.
func NewExecutor(fs afero.Fs, ruleSet []Rule) *Executor {
	return &Executor{fs: fs, rules: ruleSet, eval: NewEvaluator()}
}

// Resolve returns the destination directory, relative to the organize
// root, chosen by the first matching enabled rule, or false when no rule
// applies.
func (x *Executor) Resolve(path string) (string, bool) {
	c := Candidate{Path: path}

	needsMIME := false
	for _, rule := range x.rules {
		if rule.Enabled && rule.Condition.Type == ConditionMimePrefix {
			needsMIME = true
			break
		}
	}
	if needsMIME {
		if f, err := x.fs.Open(path); err == nil {
			if mtype, err := mimetype.DetectReader(f); err == nil {
				c.MIME = mtype.String()
			}
			f.Close()
		}
	}

	rule, ok := x.eval.FirstMatch(x.rules, c)
	if !ok {
		return "", false
	}
	return filepath.Join(rule.Action.TargetDir, x.subFolder(rule, path)), true
}

func (x *Executor) subFolder(rule *Rule, path string) string {
	switch rule.Action.Type {
	case ActionByDate:
		info, err := x.fs.Stat(path)
		if err != nil {
			return "Other"
		}
		mod := info.ModTime()
		return filepath.Join(mod.Format("2006"), mod.Format("01-January"))
	case ActionByLanguage:
		ext := strings.ToLower(filepath.Ext(path))
		if lang, ok := codeLanguages[ext]; ok {
			return lang
		}
		return extFolder(path)
	default:
		return extFolder(path)
	}
}

func extFolder(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return "Other"
	}
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}
