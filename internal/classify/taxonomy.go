/*
Copyright © 2025 changheonshin
*/
package classify

// Subcategories is the closed PARA taxonomy: four main categories with
// fixed subcategory sets, plus the fallback bucket.
var Subcategories = map[Category][]string{
	CategoryProjects:  {"active", "next"},
	CategoryAreas:     {"work", "personal", "health"},
	CategoryResources: {"references", "learning", "tools"},
	CategoryArchives:  {"done", "old"},
	CategoryOther:     {OtherSubcategory},
}

// SubcategoryKeywords describes each leaf of the taxonomy for prompt
// embedding and for the legacy keyword strategy. Order within a category
// matters: the first list is the "current/active" set, later lists win
// specific tie-breaks (see keywords.go).
var SubcategoryKeywords = map[Category]map[string][]string{
	CategoryProjects: {
		"active": {
			"ongoing project", "current task", "in progress", "this week",
			"this month", "active development", "sprint", "milestone",
			"deadline", "deliverable",
		},
		"next": {
			"planned", "scheduled", "upcoming", "next phase",
			"future project", "to be started", "roadmap", "backlog",
		},
	},
	CategoryAreas: {
		"work": {
			"business", "career", "job duties", "professional development",
			"work-related", "meeting notes", "client", "stakeholder",
			"department",
		},
		"personal": {
			"personal goals", "family", "home", "lifestyle",
			"relationships", "finances", "budget", "household",
			"personal project",
		},
		"health": {
			"fitness", "diet", "exercise", "medical", "mental health",
			"wellness", "workout", "nutrition", "health goals",
		},
	},
	CategoryResources: {
		"references": {
			"guide", "manual", "documentation", "reference material",
			"instructions", "specifications", "api", "handbook",
			"guidelines",
		},
		"learning": {
			"tutorial", "course", "study material", "learning resource",
			"educational content", "training", "workshop", "lesson",
			"examples",
		},
		"tools": {
			"tool", "template", "script", "utility", "software",
			"application", "configuration", "setup", "automation",
		},
	},
	CategoryArchives: {
		"done": {
			"completed", "finished", "delivered", "done", "accomplished",
			"closed", "final version", "released", "shipped",
		},
		"old": {
			"archived", "outdated", "old version", "past", "historical",
			"deprecated", "legacy", "obsolete", "previous",
		},
	},
}

// categoryOrder is the fixed priority order for keyword matching and
// prompt embedding.
var categoryOrder = []Category{
	CategoryProjects,
	CategoryAreas,
	CategoryResources,
	CategoryArchives,
}

// categorySynonyms maps noisy category strings (English and Korean) to
// canonical categories.
var categorySynonyms = map[string]Category{
	"projects": CategoryProjects,
	"project":  CategoryProjects,
	"프로젝트":     CategoryProjects,

	"areas": CategoryAreas,
	"area":  CategoryAreas,
	"영역":    CategoryAreas,

	"resources": CategoryResources,
	"resource":  CategoryResources,
	"자료":        CategoryResources,
	"리소스":       CategoryResources,

	"archives": CategoryArchives,
	"archive":  CategoryArchives,
	"보관":       CategoryArchives,
	"아카이브":     CategoryArchives,

	"other": CategoryOther,
	"기타":    CategoryOther,
}

// subcategorySynonyms maps noisy subcategory strings to taxonomy keys.
var subcategorySynonyms = map[string]string{
	"current_projects":  "active",
	"current":           "active",
	"진행중":               "active",
	"upcoming_projects": "next",
	"upcoming":          "next",
	"예정":                "next",

	"업무": "work",
	"개인": "personal",
	"건강": "health",

	"reference": "references",
	"참고자료":      "references",
	"학습":        "learning",
	"도구":        "tools",

	"완료": "done",
	"과거": "old",
}

// IsCanonical reports whether category is one of the five known keys.
func IsCanonical(c Category) bool {
	_, ok := Subcategories[c]
	return ok
}
