/*
Copyright © 2025 changheonshin
*/
package classify

import (
	"path/filepath"
	"strings"
)

// archival and completion keywords checked against file base names. The
// filename signal is cheap and deterministic, so it overrides whatever the
// content analysis produced.
var (
	archivalNameKeywords   = []string{"old", "archive", "backup", "deprecated"}
	completionNameKeywords = []string{"done", "complete", "final"}
)

// Resolver maps parsed classification fields to canonical PARA keys. It is
// a total function: it never fails and never returns a category outside
// the taxonomy.
type Resolver struct{}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve determines the canonical (category, subcategory) pair for a file.
// The filename override is applied before any LLM signal is consulted;
// absent or unmappable signal resolves to the other/other fallback.
func (r *Resolver) Resolve(parsed ParsedFields, filePath string) (Category, string) {
	if cat, sub, ok := filenameOverride(filePath); ok {
		return cat, sub
	}

	if parsed.Category == "" {
		return CategoryOther, OtherSubcategory
	}

	category, ok := normalizeCategory(parsed.Category)
	if !ok || parsed.Subcategory == "" {
		return CategoryOther, OtherSubcategory
	}

	return category, normalizeSubcategory(parsed.Subcategory)
}

// filenameOverride checks the base name for archival and completion
// keywords. Archival keywords win over completion keywords.
func filenameOverride(filePath string) (Category, string, bool) {
	name := strings.ToLower(filepath.Base(filePath))
	for _, kw := range archivalNameKeywords {
		if strings.Contains(name, kw) {
			return CategoryArchives, "old", true
		}
	}
	for _, kw := range completionNameKeywords {
		if strings.Contains(name, kw) {
			return CategoryArchives, "done", true
		}
	}
	return "", "", false
}

func normalizeCategory(raw string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if cat, ok := categorySynonyms[key]; ok {
		return cat, true
	}
	return "", false
}

func normalizeSubcategory(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	if mapped, ok := subcategorySynonyms[key]; ok {
		return mapped
	}
	return key
}

// FromParsed assembles a full Result out of parsed fields and the
// canonical decision.
func FromParsed(parsed ParsedFields, category Category, subcategory, raw string) Result {
	return Result{
		Success:       true,
		Category:      category,
		Subcategory:   subcategory,
		Confidence:    ParseConfidence(parsed.Confidence),
		Summary:       parsed.Summary,
		SuggestedName: parsed.SuggestedName,
		RawModelText:  raw,
	}
}
