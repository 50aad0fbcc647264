/*
Copyright © 2025 changheonshin
*/
package classify

import (
	"strconv"
	"strings"
)

// fieldLabels maps recognized line labels (lowercased, markdown stripped)
// to ParsedFields setters. English labels and their Korean equivalents
// point at the same field.
var fieldLabels = map[string]func(*ParsedFields, string){
	"category":       func(p *ParsedFields, v string) { p.Category = v },
	"main category":  func(p *ParsedFields, v string) { p.Category = v },
	"카테고리":           func(p *ParsedFields, v string) { p.Category = v },
	"분류":             func(p *ParsedFields, v string) { p.Category = v },
	"subcategory":    func(p *ParsedFields, v string) { p.Subcategory = v },
	"sub-category":   func(p *ParsedFields, v string) { p.Subcategory = v },
	"하위분류":           func(p *ParsedFields, v string) { p.Subcategory = v },
	"하위 카테고리":        func(p *ParsedFields, v string) { p.Subcategory = v },
	"confidence":     func(p *ParsedFields, v string) { p.Confidence = v },
	"신뢰도":            func(p *ParsedFields, v string) { p.Confidence = v },
	"summary":        func(p *ParsedFields, v string) { p.Summary = v },
	"요약":             func(p *ParsedFields, v string) { p.Summary = v },
	"keywords":       func(p *ParsedFields, v string) { p.Keywords = splitKeywords(v) },
	"키워드":            func(p *ParsedFields, v string) { p.Keywords = splitKeywords(v) },
	"suggested name": func(p *ParsedFields, v string) { p.SuggestedName = v },
	"filename":       func(p *ParsedFields, v string) { p.SuggestedName = v },
	"제안 이름":          func(p *ParsedFields, v string) { p.SuggestedName = v },
}

// Parse extracts the known fields from a semi-structured, line-oriented
// LLM response. Lines that match no known label are skipped; a response
// with no Category line yields empty ParsedFields, which is a valid
// "no signal" result rather than an error. Parse never fails.
func Parse(raw string) ParsedFields {
	var parsed ParsedFields

	for _, line := range strings.Split(raw, "\n") {
		line = stripMarkdown(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		// Leading list markers ("1." , "- ") commonly wrap labels.
		line = strings.TrimLeft(line, "-*0123456789. \t")

		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		set, ok := fieldLabels[strings.ToLower(strings.TrimSpace(label))]
		if !ok {
			continue
		}

		value = primaryValue(value)
		if value != "" {
			set(&parsed, value)
		}
	}

	return parsed
}

// primaryValue trims a field value and drops any parenthesized translation
// appended after the primary text.
func primaryValue(v string) string {
	if idx := strings.IndexAny(v, "(（"); idx >= 0 {
		v = v[:idx]
	}
	return strings.TrimSpace(stripMarkdown(v))
}

// stripMarkdown removes emphasis markers and inline code ticks.
func stripMarkdown(s string) string {
	return strings.NewReplacer("**", "", "*", "", "__", "", "`", "").Replace(s)
}

func splitKeywords(v string) []string {
	var keywords []string
	for _, k := range strings.Split(v, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// ParseConfidence maps a confidence field to the [0,1] range. Verbal
// levels get fixed values; numeric values are clamped. Confidence is
// informational telemetry only and gates nothing.
func ParseConfidence(v string) float64 {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return 0
	case "high", "높음":
		return 0.9
	case "medium", "중간":
		return 0.6
	case "low", "낮음":
		return 0.3
	}

	num := strings.TrimSuffix(strings.TrimSpace(v), "%")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if strings.HasSuffix(strings.TrimSpace(v), "%") {
		f /= 100
	}
	if f > 1 {
		f /= 100 // percentage form
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f
}
