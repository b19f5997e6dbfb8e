package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumeradar/internal/analysis"
	"resumeradar/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() analysis.Report {
	return analysis.Report{
		Status:  analysis.StatusAnalyzed,
		Persona: analysis.PersonaFAANG,
		Analysis: &analysis.AnalysisResult{
			Categories: []analysis.CategoryScore{
				{Category: analysis.CategoryKeywords, Score: 50, Weight: 0.30, Issues: []string{}, Suggestions: []string{"Add more technical keywords"}},
				{Category: analysis.CategoryFormatting, Score: 30, Weight: 0.25, Issues: []string{"Missing contact information"}, Suggestions: []string{}},
			},
			Overall:   analysis.OverallScore{Score: 41, Band: analysis.BandNeedsImprovement},
			WordCount: 350,
		},
		Suggestions: []analysis.Suggestion{
			{
				ID:             "metrics",
				Type:           analysis.SuggestionMetrics,
				Priority:       analysis.PriorityHigh,
				Title:          "Quantify your achievements",
				Description:    "No numbers.",
				SuggestionText: "Add numbers.",
				ImpactLabel:    "High impact",
				Examples:       []string{"Cut p99 latency by 40%"},
				SalaryImpact:   15000,
			},
		},
	}
}

func TestFormatReportText(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleReport(), "text")
	require.NoError(t, err)

	assert.Contains(t, out, "=== RESUME ANALYSIS (faang) ===")
	assert.Contains(t, out, "Overall Score: 41/100 (needsImprovement)")
	assert.Contains(t, out, "keywords     50/100  (weight 30%)")
	assert.Contains(t, out, "! Missing contact information")
	assert.Contains(t, out, "1. [high] Quantify your achievements (metrics)")
	assert.Contains(t, out, "salary +$15,000")
	assert.NotContains(t, out, "\x1b[", "uncolored registry must not emit escapes")
}

func TestFormatReportTextColor(t *testing.T) {
	out, err := NewFormatterRegistry(WithColor(true)).Format(sampleReport(), "text")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
}

func TestFormatReportMarkdown(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleReport(), "markdown")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Resume Analysis (faang)"))
	assert.Contains(t, out, "| keywords | 50 | 30% |")
	assert.Contains(t, out, "- **Issue:** Missing contact information")
	assert.Contains(t, out, "### 1. Quantify your achievements")
}

func TestFormatNoAnalysis(t *testing.T) {
	na, ok := analysis.CheckAnalyzable("too short")
	require.False(t, ok)
	report := analysis.Report{Status: analysis.StatusNoAnalysis, Persona: analysis.PersonaStartup, NoAnalysis: &na}

	text, err := GlobalRegistry.Format(report, "text")
	require.NoError(t, err)
	assert.Contains(t, text, "=== NO ANALYSIS ===")
	assert.Contains(t, text, "9 characters, at least 50 required")

	md, err := GlobalRegistry.Format(report, "markdown")
	require.NoError(t, err)
	assert.Contains(t, md, "# No Analysis")

	js, err := GlobalRegistry.Format(report, "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, "no_analysis", decoded["status"])
	assert.NotContains(t, decoded, "analysis")
}

func TestFormatTables(t *testing.T) {
	rules := analysis.DefaultRules()

	personas, err := GlobalRegistry.Format(types.PersonaList{Default: analysis.PersonaFAANG, Personas: rules.Personas}, "text")
	require.NoError(t, err)
	assert.Contains(t, personas, "faang - ")
	assert.Contains(t, personas, "(default)")

	trends, err := GlobalRegistry.Format(types.TrendList{Source: "builtin", Trends: rules.Trends}, "markdown")
	require.NoError(t, err)
	assert.Contains(t, trends, "| Generative AI | +52% | $20,000 |")
}

func TestFormatUnknownFormat(t *testing.T) {
	_, err := GlobalRegistry.Format(sampleReport(), "xml")
	assert.Error(t, err)
}

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "markdown", "text"}, GlobalRegistry.GetSupportedFormats())
}

func TestThousands(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 15000: "15,000", 1234567: "1,234,567"}
	for in, want := range tests {
		assert.Equal(t, want, thousands(in))
	}
}
