package formatters

import (
	"fmt"
	"strings"

	"resumeradar/internal/types"
)

// PersonaTextFormatter lists persona templates
type PersonaTextFormatter struct{}

func (ptf *PersonaTextFormatter) Format(data any) (string, error) {
	list, ok := data.(types.PersonaList)
	if !ok {
		return "", fmt.Errorf("expected PersonaList, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== PERSONAS ===\n")
	for _, p := range list.Personas {
		marker := ""
		if p.ID == list.Default {
			marker = " (default)"
		}
		output.WriteString(fmt.Sprintf("\n%s - %s%s\n", p.ID, p.DisplayName, marker))
		output.WriteString(fmt.Sprintf("  Keywords: %s\n", strings.Join(p.Keywords, ", ")))
		if len(p.Phrases) > 0 {
			output.WriteString(fmt.Sprintf("  Phrases:  %s\n", strings.Join(p.Phrases, "; ")))
		}
		if len(p.Metrics) > 0 {
			output.WriteString(fmt.Sprintf("  Metrics:  %s\n", strings.Join(p.Metrics, "; ")))
		}
	}
	return output.String(), nil
}

func (ptf *PersonaTextFormatter) SupportedType() string {
	return "PersonaList"
}

// PersonaMarkdownFormatter lists persona templates as Markdown
type PersonaMarkdownFormatter struct{}

func (pmf *PersonaMarkdownFormatter) Format(data any) (string, error) {
	list, ok := data.(types.PersonaList)
	if !ok {
		return "", fmt.Errorf("expected PersonaList, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Personas\n\n")
	for _, p := range list.Personas {
		output.WriteString(fmt.Sprintf("## %s (`%s`)\n\n", p.DisplayName, p.ID))
		output.WriteString(fmt.Sprintf("**Keywords:** %s\n\n", strings.Join(p.Keywords, ", ")))
		if p.SummaryTemplate != "" {
			output.WriteString(fmt.Sprintf("> %s\n\n", p.SummaryTemplate))
		}
	}
	return output.String(), nil
}

func (pmf *PersonaMarkdownFormatter) SupportedType() string {
	return "PersonaList"
}

// TrendTextFormatter lists the trend table
type TrendTextFormatter struct{}

func (ttf *TrendTextFormatter) Format(data any) (string, error) {
	list, ok := data.(types.TrendList)
	if !ok {
		return "", fmt.Errorf("expected TrendList, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("=== TRENDING SKILLS (source: %s) ===\n", list.Source))
	for i, t := range list.Trends {
		output.WriteString(fmt.Sprintf("%2d. %-20s +%d%% demand  +$%s\n", i+1, t.Skill, t.TrendPercent, thousands(t.SalaryImpact)))
	}
	return output.String(), nil
}

func (ttf *TrendTextFormatter) SupportedType() string {
	return "TrendList"
}

// TrendMarkdownFormatter lists the trend table as Markdown
type TrendMarkdownFormatter struct{}

func (tmf *TrendMarkdownFormatter) Format(data any) (string, error) {
	list, ok := data.(types.TrendList)
	if !ok {
		return "", fmt.Errorf("expected TrendList, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Trending Skills\n\n")
	output.WriteString(fmt.Sprintf("Source: %s\n\n", list.Source))
	output.WriteString("| Skill | Demand | Salary Impact |\n")
	output.WriteString("|-------|--------|---------------|\n")
	for _, t := range list.Trends {
		output.WriteString(fmt.Sprintf("| %s | +%d%% | $%s |\n", t.Skill, t.TrendPercent, thousands(t.SalaryImpact)))
	}
	return output.String(), nil
}

func (tmf *TrendMarkdownFormatter) SupportedType() string {
	return "TrendList"
}
