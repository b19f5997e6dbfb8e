package analysis

import (
	"fmt"
	"strings"
	"unicode"
)

// SuggestionType classifies what a suggestion asks the author to change
type SuggestionType string

const (
	SuggestionMetrics   SuggestionType = "metrics"
	SuggestionKeywords  SuggestionType = "keywords"
	SuggestionTrending  SuggestionType = "trending"
	SuggestionLanguage  SuggestionType = "language"
	SuggestionStructure SuggestionType = "structure"
)

// Priority orders suggestions by expected payoff
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Suggestion is one actionable recommendation
type Suggestion struct {
	ID             string         `json:"id"`
	Type           SuggestionType `json:"type"`
	Priority       Priority       `json:"priority"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	SuggestionText string         `json:"suggestionText"`
	ImpactLabel    string         `json:"impactLabel"`
	Keywords       []string       `json:"keywords,omitempty"`
	Examples       []string       `json:"examples,omitempty"`
	Template       string         `json:"template,omitempty"`
	SalaryImpact   int            `json:"salaryImpact,omitempty"`
	TrendPercent   int            `json:"trendPercent,omitempty"`
}

const (
	// MetricsSalaryImpact is the fixed estimate attached to the quantify-results suggestion
	MetricsSalaryImpact = 15000
	// MaxKeywordSuggestions caps the persona keywords proposed at once
	MaxKeywordSuggestions = 3
)

// WeakPhrases are phrasings replaced by the language suggestion
var WeakPhrases = []string{"worked on", "helped with", "was responsible for", "did"}

// StrongVerbs are offered as replacements for weak phrasing
var StrongVerbs = []string{"Developed", "Implemented", "Architected", "Optimized", "Led"}

type suggestionRule func(doc Document, persona PersonaTemplate) []Suggestion

// SuggestionGenerator applies the fixed rule sequence to a document
type SuggestionGenerator struct {
	matcher KeywordMatcher
	trends  *TrendOverlay
}

func NewSuggestionGenerator(matcher KeywordMatcher, trends *TrendOverlay) *SuggestionGenerator {
	return &SuggestionGenerator{matcher: matcher, trends: trends}
}

// Generate returns suggestions in rule order: metrics, keywords, trending, language, structure
func (g *SuggestionGenerator) Generate(doc Document, persona PersonaTemplate) []Suggestion {
	rules := []suggestionRule{
		g.metricsRule,
		g.keywordRule,
		g.trendingRule,
		g.languageRule,
		g.structureRule,
	}
	out := make([]Suggestion, 0, len(rules)+TrendingSuggestionLimit)
	for _, rule := range rules {
		out = append(out, rule(doc, persona)...)
	}
	return out
}

func (g *SuggestionGenerator) metricsRule(doc Document, persona PersonaTemplate) []Suggestion {
	if g.matcher.Contains(doc, "%") || g.matcher.Contains(doc, "increased") {
		return nil
	}
	return []Suggestion{{
		ID:             "metrics",
		Type:           SuggestionMetrics,
		Priority:       PriorityHigh,
		Title:          "Quantify your achievements",
		Description:    "Your experience does not show measurable outcomes. Recruiters look for numbers that prove impact.",
		SuggestionText: "Add percentages, dollar amounts or scale figures to your strongest achievements.",
		ImpactLabel:    "High impact on interview rate",
		Examples:       cloneStrings(persona.Metrics),
		SalaryImpact:   MetricsSalaryImpact,
	}}
}

func (g *SuggestionGenerator) keywordRule(doc Document, persona PersonaTemplate) []Suggestion {
	missing := Missing(g.matcher, doc, persona.Keywords)
	if len(missing) == 0 {
		return nil
	}
	if len(missing) > MaxKeywordSuggestions {
		missing = missing[:MaxKeywordSuggestions]
	}
	return []Suggestion{{
		ID:             "keywords",
		Type:           SuggestionKeywords,
		Priority:       PriorityHigh,
		Title:          fmt.Sprintf("Add %s keywords", persona.DisplayName),
		Description:    fmt.Sprintf("Applicant tracking systems for %s roles screen for terms your resume does not use.", persona.DisplayName),
		SuggestionText: "Work these terms into your summary and experience where they are accurate: " + strings.Join(missing, ", "),
		ImpactLabel:    "Improves ATS match",
		Keywords:       missing,
		Examples:       cloneStrings(persona.Phrases),
	}}
}

func (g *SuggestionGenerator) trendingRule(doc Document, _ PersonaTemplate) []Suggestion {
	entries := g.trends.Unmatched(doc, TrendingSuggestionLimit)
	out := make([]Suggestion, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Suggestion{
			ID:             "trending-" + slugify(entry.Skill),
			Type:           SuggestionTrending,
			Priority:       PriorityMedium,
			Title:          fmt.Sprintf("Highlight %s experience", entry.Skill),
			Description:    entry.Rationale,
			SuggestionText: fmt.Sprintf("If you have worked with %s, add it to your skills and describe where you used it.", entry.Skill),
			ImpactLabel:    fmt.Sprintf("+%d%% demand", entry.TrendPercent),
			Keywords:       []string{entry.Skill},
			SalaryImpact:   entry.SalaryImpact,
			TrendPercent:   entry.TrendPercent,
		})
	}
	return out
}

func (g *SuggestionGenerator) languageRule(doc Document, _ PersonaTemplate) []Suggestion {
	weak := Present(g.matcher, doc, WeakPhrases)
	if len(weak) == 0 {
		return nil
	}
	return []Suggestion{{
		ID:             "weak-verbs",
		Type:           SuggestionLanguage,
		Priority:       PriorityMedium,
		Title:          "Replace weak phrasing",
		Description:    "Passive phrases hide your contribution: " + strings.Join(weak, ", "),
		SuggestionText: "Lead each achievement with a strong action verb that states what you did.",
		ImpactLabel:    "Stronger first impression",
		Keywords:       weak,
		Examples:       cloneStrings(StrongVerbs),
	}}
}

func (g *SuggestionGenerator) structureRule(doc Document, persona PersonaTemplate) []Suggestion {
	if g.matcher.Contains(doc, "professional summary") {
		return nil
	}
	return []Suggestion{{
		ID:             "structure",
		Type:           SuggestionStructure,
		Priority:       PriorityHigh,
		Title:          "Add a professional summary",
		Description:    "A short summary at the top tells reviewers who you are before they read the details.",
		SuggestionText: "Open with a two or three sentence Professional Summary tailored to the role.",
		ImpactLabel:    "Better first screen",
		Template:       persona.SummaryTemplate,
	}}
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}
