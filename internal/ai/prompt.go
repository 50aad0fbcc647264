/*
Copyright © 2025 changheonshin
*/
package ai

import (
	"fmt"
	"strings"

	"github.com/devlikebear/parafile/internal/classify"
)

// MaxSampleChars bounds how much content is embedded in a prompt. The cap
// keeps provider latency and cost predictable.
const MaxSampleChars = 1500

// PromptBuilder assembles classification prompts around the fixed PARA
// taxonomy so the model's output space stays constrained to known labels.
type PromptBuilder struct {
	maxSample int
}

// NewPromptBuilder creates a builder with the default sample cap.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{maxSample: MaxSampleChars}
}

// Build produces the classification prompt for one file. When the detected
// language is Korean, the instructions are emitted bilingually; the
// taxonomy keys and answer labels remain stable English tokens.
func (b *PromptBuilder) Build(contentType, textSample, languageHint string) string {
	sample := truncateRunes(textSample, b.maxSample)
	korean := languageHint == "ko" || languageHint == "korean"

	var sb strings.Builder

	if korean {
		sb.WriteString("다음 파일의 내용을 PARA 방식에 따라 분류해주세요.\n")
		sb.WriteString("Classify the following content according to the PARA method.\n\n")
	} else {
		sb.WriteString("Classify the following content according to the PARA method. ")
		sb.WriteString("Choose the most appropriate category and subcategory from the fixed taxonomy below.\n\n")
	}

	sb.WriteString("Categories:\n")
	writeTaxonomy(&sb)

	sb.WriteString("\nAnswer using exactly this format:\n")
	sb.WriteString("Category: <Projects|Areas|Resources|Archives>\n")
	sb.WriteString("Subcategory: <subcategory key>\n")
	sb.WriteString("Confidence: <high|medium|low>\n")
	sb.WriteString("Summary: <one sentence>\n")
	sb.WriteString("Keywords: <comma separated>\n")
	sb.WriteString("Suggested name: <2-5 words, hyphen separated, no extension>\n")
	if korean {
		sb.WriteString("\n답변은 위 형식을 그대로 따라주세요. 카테고리 키는 영문으로 유지해주세요.\n")
	}

	fmt.Fprintf(&sb, "\nContent type: %s\n", contentType)
	fmt.Fprintf(&sb, "Content:\n%s\n", sample)

	return sb.String()
}

// writeTaxonomy renders the closed category/subcategory enumeration with
// its descriptive keywords.
func writeTaxonomy(sb *strings.Builder) {
	descriptions := map[classify.Category]string{
		classify.CategoryProjects:  "Time-bound efforts with clear goals",
		classify.CategoryAreas:     "Ongoing responsibilities requiring maintenance",
		classify.CategoryResources: "Reference materials and tools",
		classify.CategoryArchives:  "Completed or inactive items",
	}

	for i, category := range []classify.Category{
		classify.CategoryProjects,
		classify.CategoryAreas,
		classify.CategoryResources,
		classify.CategoryArchives,
	} {
		fmt.Fprintf(sb, "%d. %s: %s\n", i+1, titleCase(string(category)), descriptions[category])
		for _, sub := range classify.Subcategories[category] {
			keywords := classify.SubcategoryKeywords[category][sub]
			fmt.Fprintf(sb, "   - %s\n     Keywords: %s\n", sub, strings.Join(keywords, ", "))
		}
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncateRunes(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
