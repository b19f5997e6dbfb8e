package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"resumeradar/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(DefaultRules(), opts...)
}

func TestNormalize(t *testing.T) {
	doc := Normalize("Line One\n  Second LINE here\n")
	assert.Equal(t, "line one\n  second line here\n", doc.Lower)
	assert.Equal(t, 5, doc.WordCount)
	assert.Len(t, doc.Lines, 3)

	empty := Normalize("")
	assert.Equal(t, 0, empty.WordCount)
}

func TestCheckAnalyzable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"whitespace only", strings.Repeat(" \n\t", 40), false},
		{"49 chars", strings.Repeat("a", 49), false},
		{"50 chars", strings.Repeat("a", 50), true},
		{"49 chars padded", "   " + strings.Repeat("a", 49) + "\n\n", false},
		{"multibyte counted as characters", strings.Repeat("é", 50), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na, ok := CheckAnalyzable(tt.text)
			assert.Equal(t, tt.want, ok)
			if !ok {
				assert.Equal(t, MinAnalyzableChars, na.MinChars)
				assert.NotEmpty(t, na.Reason)
			}
		})
	}
}

func TestShortTextIsNoAnalysis(t *testing.T) {
	e := newTestEngine()
	text := strings.Repeat("x", 40)

	_, ok, err := e.AnalyzeResume(text, PersonaFAANG)
	require.NoError(t, err)
	assert.False(t, ok)

	suggestions, ok, err := e.GenerateSuggestions(text, PersonaFAANG)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, suggestions)

	report, err := e.Report(text, PersonaFAANG, IncludeAll)
	require.NoError(t, err)
	assert.Equal(t, StatusNoAnalysis, report.Status)
	assert.Nil(t, report.Analysis)
	require.NotNil(t, report.NoAnalysis)
	assert.Equal(t, 40, report.NoAnalysis.Chars)
}

func TestSparseResumeScores(t *testing.T) {
	e := newTestEngine()
	result, ok, err := e.AnalyzeResume(sparseResume(), PersonaStartup)
	require.NoError(t, err)
	require.True(t, ok)

	want := map[Category]int{
		CategoryKeywords:   0,
		CategoryFormatting: 0,
		CategorySections:   50,
		CategoryLength:     100,
	}
	require.Len(t, result.Categories, 4)
	for c, score := range want {
		got, found := result.Category(c)
		require.True(t, found, c)
		assert.Equal(t, score, got.Score, c)
	}
	assert.Equal(t, 350, result.WordCount)
	assert.Equal(t, OverallScore{Score: 33, Band: BandNeedsImprovement}, result.Overall)
}

func TestSparseResumeFAANGKeywords(t *testing.T) {
	e := newTestEngine()
	suggestions, ok, err := e.GenerateSuggestions(sparseResume(), PersonaFAANG)
	require.NoError(t, err)
	require.True(t, ok)

	var keyword *Suggestion
	for i := range suggestions {
		if suggestions[i].Type == SuggestionKeywords {
			keyword = &suggestions[i]
		}
	}
	require.NotNil(t, keyword)
	assert.Equal(t, []string{"scalability", "distributed systems", "microservices"}, keyword.Keywords)
	assert.Equal(t, PriorityHigh, keyword.Priority)
}

func TestSuggestionOrderAndIDs(t *testing.T) {
	e := newTestEngine()
	suggestions, ok, err := e.GenerateSuggestions(sparseResume(), PersonaFAANG)
	require.NoError(t, err)
	require.True(t, ok)

	ids := make([]string, len(suggestions))
	for i, s := range suggestions {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{
		"metrics",
		"keywords",
		"trending-generative-ai",
		"trending-machine-learning",
		"structure",
	}, ids)

	metrics := suggestions[0]
	assert.Equal(t, MetricsSalaryImpact, metrics.SalaryImpact)
	assert.Equal(t, PriorityHigh, metrics.Priority)

	trend := suggestions[2]
	assert.Equal(t, PriorityMedium, trend.Priority)
	assert.Equal(t, 52, trend.TrendPercent)
	assert.Equal(t, 20000, trend.SalaryImpact)

	structure := suggestions[4]
	tpl, _ := DefaultRules().Persona(PersonaFAANG)
	assert.Equal(t, tpl.SummaryTemplate, structure.Template)
}

func TestStructureTemplateFollowsPersona(t *testing.T) {
	e := newTestEngine()
	seen := map[string]PersonaID{}
	for _, id := range KnownPersonas {
		suggestions, ok, err := e.GenerateSuggestions(sparseResume(), id)
		require.NoError(t, err)
		require.True(t, ok)
		last := suggestions[len(suggestions)-1]
		require.Equal(t, SuggestionStructure, last.Type)
		require.NotEmpty(t, last.Template)
		_, dup := seen[last.Template]
		assert.False(t, dup, "persona %s reuses another persona's template", id)
		seen[last.Template] = id
	}
}

func TestWeakVerbSuggestion(t *testing.T) {
	e := newTestEngine()
	text := sparseResume() + " I worked on the backend and was responsible for releases."
	suggestions, ok, err := e.GenerateSuggestions(text, PersonaStartup)
	require.NoError(t, err)
	require.True(t, ok)

	var weak *Suggestion
	for i := range suggestions {
		if suggestions[i].ID == "weak-verbs" {
			weak = &suggestions[i]
		}
	}
	require.NotNil(t, weak)
	assert.Equal(t, SuggestionLanguage, weak.Type)
	assert.Equal(t, PriorityMedium, weak.Priority)
	assert.Equal(t, []string{"worked on", "was responsible for"}, weak.Keywords)
	assert.Equal(t, StrongVerbs, weak.Examples)
}

func TestStrongResume(t *testing.T) {
	e := newTestEngine()
	report, err := e.Report(strongResume, PersonaFAANG, IncludeAll)
	require.NoError(t, err)
	require.Equal(t, StatusAnalyzed, report.Status)
	require.NotNil(t, report.Analysis)

	keywords, _ := report.Analysis.Category(CategoryKeywords)
	formatting, _ := report.Analysis.Category(CategoryFormatting)
	sections, _ := report.Analysis.Category(CategorySections)
	assert.Equal(t, 100, keywords.Score)
	assert.Equal(t, 100, formatting.Score)
	assert.Equal(t, 100, sections.Score)
	assert.Empty(t, sections.Issues)

	for _, s := range report.Suggestions {
		assert.NotEqual(t, "metrics", s.ID)
		assert.NotEqual(t, "structure", s.ID)
		if s.Type == SuggestionTrending {
			assert.NotContains(t, strings.ToLower(strongResume), strings.ToLower(s.Keywords[0]))
		}
	}
}

func TestDeterminism(t *testing.T) {
	e := newTestEngine()
	texts := []string{sparseResume(), strongResume, sparseResume() + " helped with did"}
	for _, text := range texts {
		for _, id := range KnownPersonas {
			first, err := e.Report(text, id, IncludeAll)
			require.NoError(t, err)
			second, err := e.Report(text, id, IncludeAll)
			require.NoError(t, err)

			a, err := json.Marshal(first)
			require.NoError(t, err)
			b, err := json.Marshal(second)
			require.NoError(t, err)
			assert.Equal(t, string(a), string(b))
		}
	}
}

func TestSuggestionIDsUnique(t *testing.T) {
	e := newTestEngine()
	text := sparseResume() + " did"
	for _, id := range KnownPersonas {
		suggestions, _, err := e.GenerateSuggestions(text, id)
		require.NoError(t, err)
		seen := map[string]bool{}
		for _, s := range suggestions {
			assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
			seen[s.ID] = true
		}
	}
}

func TestScoresStayInRange(t *testing.T) {
	e := newTestEngine()
	texts := []string{
		sparseResume(),
		strongResume,
		fillerText(5000),
		strings.Repeat("- python docker aws 40% increased million leadership teamwork\n\n", 200),
		"@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@ 5551234567",
	}
	for _, text := range texts {
		result, ok, err := e.AnalyzeResume(text, PersonaEnterprise)
		require.NoError(t, err)
		require.True(t, ok)
		for _, c := range result.Categories {
			assert.GreaterOrEqual(t, c.Score, 0)
			assert.LessOrEqual(t, c.Score, 100)
		}
		keywords, _ := result.Category(CategoryKeywords)
		assert.Zero(t, keywords.Score%25)
		assert.GreaterOrEqual(t, result.Overall.Score, 0)
		assert.LessOrEqual(t, result.Overall.Score, 100)
	}
}

func TestUnknownPersona(t *testing.T) {
	e := newTestEngine()
	_, _, err := e.AnalyzeResume(strongResume, PersonaID("bigco"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownPersona, errors.CodeOf(err))

	_, err = e.Report(strongResume, PersonaID("bigco"), IncludeAll)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestParsePersona(t *testing.T) {
	id, err := ParsePersona("  FAANG ")
	require.NoError(t, err)
	assert.Equal(t, PersonaFAANG, id)

	_, err = ParsePersona("agency")
	assert.Error(t, err)
}

func TestReportIncludeScoresOnly(t *testing.T) {
	e := newTestEngine()
	report, err := e.Report(strongResume, PersonaStartup, IncludeScores)
	require.NoError(t, err)
	assert.NotNil(t, report.Analysis)
	assert.Nil(t, report.Suggestions)
}

func TestEngineIsolatedFromCallerRules(t *testing.T) {
	rules := DefaultRules()
	e := NewEngine(rules)
	rules.Trends[0].Skill = "COBOL"
	rules.Personas[0].Keywords[0] = "mainframe"

	got := e.Rules()
	assert.Equal(t, "Generative AI", got.Trends[0].Skill)
	assert.Equal(t, "scalability", got.Personas[0].Keywords[0])
}
