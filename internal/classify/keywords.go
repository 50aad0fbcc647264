/*
Copyright © 2025 changheonshin
*/
package classify

import "strings"

// KeywordStrategy is the legacy non-LLM categorizer: it matches fixed
// keyword phrases against the content sample. Categories are tried in the
// fixed priority order Projects, Areas, Resources, Archives; the first
// category with any phrase hit wins.
type KeywordStrategy struct{}

// NewKeywordStrategy creates the legacy strategy.
func NewKeywordStrategy() *KeywordStrategy {
	return &KeywordStrategy{}
}

// Resolve matches content keywords, falling back to the filename override
// and then to other/other. Within projects, a "future/planned" phrase wins
// the subcategory choice over "current/active" phrases; the same specific-
// beats-default rule applies inside the other categories.
func (s *KeywordStrategy) Resolve(content, filePath string) (Category, string) {
	lowered := strings.ToLower(content)

	for _, category := range categoryOrder {
		sub, ok := matchCategory(category, lowered)
		if ok {
			return category, sub
		}
	}

	if cat, sub, ok := filenameOverride(filePath); ok {
		return cat, sub
	}

	return CategoryOther, OtherSubcategory
}

// subcategoryPreference lists, per category, which subcategory wins when
// phrases from several subcategories match. The first matching entry is
// chosen; the final entry is the category default.
var subcategoryPreference = map[Category][]string{
	CategoryProjects:  {"next", "active"},
	CategoryAreas:     {"work", "health", "personal"},
	CategoryResources: {"learning", "tools", "references"},
	CategoryArchives:  {"done", "old"},
}

func matchCategory(category Category, content string) (string, bool) {
	matched := map[string]bool{}
	for sub, phrases := range SubcategoryKeywords[category] {
		for _, phrase := range phrases {
			if strings.Contains(content, phrase) {
				matched[sub] = true
				break
			}
		}
	}
	if len(matched) == 0 {
		return "", false
	}

	prefs := subcategoryPreference[category]
	for _, sub := range prefs {
		if matched[sub] {
			return sub, true
		}
	}
	return prefs[len(prefs)-1], true
}
