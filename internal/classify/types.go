/*
Copyright © 2025 changheonshin
*/

// Package classify turns raw LLM responses into canonical PARA category
// decisions. It contains the response parser, the category resolver and the
// legacy keyword-matching strategy.
package classify

// Category is a canonical top-level PARA category.
type Category string

const (
	CategoryProjects  Category = "projects"
	CategoryAreas     Category = "areas"
	CategoryResources Category = "resources"
	CategoryArchives  Category = "archives"
	CategoryOther     Category = "other"
)

// OtherSubcategory is the subcategory of the fallback bucket.
const OtherSubcategory = "other"

// Result is the immutable outcome of classifying one file.
type Result struct {
	Success       bool
	Category      Category
	Subcategory   string
	Confidence    float64
	Summary       string
	SuggestedName string
	// RawModelText is kept for diagnostics.
	RawModelText string
	Error        string
}

// Failed builds a Result honoring the invariant that unsuccessful
// classifications always land in the fallback bucket.
func Failed(raw, errMsg string) Result {
	return Result{
		Success:      false,
		Category:     CategoryOther,
		Subcategory:  OtherSubcategory,
		RawModelText: raw,
		Error:        errMsg,
	}
}

// ParsedFields holds the optional fields recovered from a semi-structured
// LLM response. Absent fields stay empty.
type ParsedFields struct {
	Category      string
	Subcategory   string
	Confidence    string
	Summary       string
	Keywords      []string
	SuggestedName string
}

// Empty reports whether the parser found no usable signal at all.
func (p ParsedFields) Empty() bool {
	return p.Category == ""
}
