package formatters

import (
	"fmt"
	"strings"

	"resumeradar/internal/analysis"

	"github.com/fatih/color"
)

// ReportTextFormatter renders a report for a terminal
type ReportTextFormatter struct {
	Color bool
}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	report, ok := data.(analysis.Report)
	if !ok {
		return "", fmt.Errorf("expected Report, got %T", data)
	}

	var output strings.Builder

	if report.Status == analysis.StatusNoAnalysis {
		output.WriteString("=== NO ANALYSIS ===\n")
		writeNoAnalysis(&output, report.NoAnalysis)
		return output.String(), nil
	}

	if a := report.Analysis; a != nil {
		output.WriteString(fmt.Sprintf("=== RESUME ANALYSIS (%s) ===\n\n", report.Persona))
		output.WriteString(fmt.Sprintf("Overall Score: %s\n", rtf.colorize(
			fmt.Sprintf("%d/100 (%s)", a.Overall.Score, a.Overall.Band), bandColor(a.Overall.Band))))
		output.WriteString(fmt.Sprintf("Word Count: %d\n\n", a.WordCount))

		output.WriteString("=== CATEGORY SCORES ===\n")
		for _, c := range a.Categories {
			output.WriteString(fmt.Sprintf("%-11s %3d/100  (weight %.0f%%)\n", c.Category, c.Score, c.Weight*100))
			for _, issue := range c.Issues {
				output.WriteString(fmt.Sprintf("  ! %s\n", rtf.colorize(issue, color.FgYellow)))
			}
			for _, improvement := range c.Suggestions {
				output.WriteString(fmt.Sprintf("  + %s\n", improvement))
			}
		}
		output.WriteString("\n")
	}

	if len(report.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for i, s := range report.Suggestions {
			output.WriteString(fmt.Sprintf("%d. [%s] %s (%s)\n", i+1,
				rtf.colorize(string(s.Priority), priorityColor(s.Priority)), s.Title, s.ID))
			output.WriteString(fmt.Sprintf("   %s\n", s.Description))
			output.WriteString(fmt.Sprintf("   Suggestion: %s\n", s.SuggestionText))
			if len(s.Keywords) > 0 {
				output.WriteString(fmt.Sprintf("   Keywords: %s\n", strings.Join(s.Keywords, ", ")))
			}
			if len(s.Examples) > 0 {
				output.WriteString("   Examples:\n")
				for _, ex := range s.Examples {
					output.WriteString(fmt.Sprintf("   - %s\n", ex))
				}
			}
			if s.Template != "" {
				output.WriteString(fmt.Sprintf("   Template: %s\n", s.Template))
			}
			output.WriteString(fmt.Sprintf("   Impact: %s\n", impactLine(s)))
		}
	} else if report.Analysis == nil {
		output.WriteString("No suggestions.\n")
	}

	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return "Report"
}

// colorize applies color to text if color is enabled
func (rtf *ReportTextFormatter) colorize(text string, attr color.Attribute) string {
	if !rtf.Color {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

func bandColor(b analysis.Band) color.Attribute {
	switch b {
	case analysis.BandExcellent:
		return color.FgGreen
	case analysis.BandGood:
		return color.FgCyan
	default:
		return color.FgRed
	}
}

func priorityColor(p analysis.Priority) color.Attribute {
	if p == analysis.PriorityHigh {
		return color.FgRed
	}
	return color.FgYellow
}

func impactLine(s analysis.Suggestion) string {
	parts := []string{s.ImpactLabel}
	if s.SalaryImpact > 0 {
		parts = append(parts, fmt.Sprintf("salary +$%s", thousands(s.SalaryImpact)))
	}
	if s.TrendPercent > 0 {
		parts = append(parts, fmt.Sprintf("demand +%d%%", s.TrendPercent))
	}
	return strings.Join(parts, " | ")
}

// thousands formats n with comma separators
func thousands(n int) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func writeNoAnalysis(output *strings.Builder, na *analysis.NoAnalysis) {
	if na == nil {
		output.WriteString("Resume text could not be analyzed.\n")
		return
	}
	output.WriteString(fmt.Sprintf("%s: %d characters, at least %d required.\n", capitalize(na.Reason), na.Chars, na.MinChars))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ReportMarkdownFormatter renders a report as Markdown
type ReportMarkdownFormatter struct{}

func (rmf *ReportMarkdownFormatter) Format(data any) (string, error) {
	report, ok := data.(analysis.Report)
	if !ok {
		return "", fmt.Errorf("expected Report, got %T", data)
	}

	var output strings.Builder

	if report.Status == analysis.StatusNoAnalysis {
		output.WriteString("# No Analysis\n\n")
		writeNoAnalysis(&output, report.NoAnalysis)
		return output.String(), nil
	}

	output.WriteString(fmt.Sprintf("# Resume Analysis (%s)\n\n", report.Persona))

	if a := report.Analysis; a != nil {
		output.WriteString(fmt.Sprintf("**Overall Score:** %d/100 (%s)\n\n", a.Overall.Score, a.Overall.Band))
		output.WriteString(fmt.Sprintf("**Word Count:** %d\n\n", a.WordCount))

		output.WriteString("## Category Scores\n\n")
		output.WriteString("| Category | Score | Weight |\n")
		output.WriteString("|----------|-------|--------|\n")
		for _, c := range a.Categories {
			output.WriteString(fmt.Sprintf("| %s | %d | %.0f%% |\n", c.Category, c.Score, c.Weight*100))
		}
		output.WriteString("\n")

		for _, c := range a.Categories {
			if len(c.Issues) == 0 && len(c.Suggestions) == 0 {
				continue
			}
			output.WriteString(fmt.Sprintf("### %s\n\n", c.Category))
			for _, issue := range c.Issues {
				output.WriteString(fmt.Sprintf("- **Issue:** %s\n", issue))
			}
			for _, improvement := range c.Suggestions {
				output.WriteString(fmt.Sprintf("- %s\n", improvement))
			}
			output.WriteString("\n")
		}
	}

	if len(report.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, s := range report.Suggestions {
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, s.Title))
			output.WriteString(fmt.Sprintf("*%s priority, %s* `%s`\n\n", s.Priority, s.Type, s.ID))
			output.WriteString(s.Description + "\n\n")
			output.WriteString(fmt.Sprintf("> %s\n\n", s.SuggestionText))
			if len(s.Keywords) > 0 {
				output.WriteString(fmt.Sprintf("**Keywords:** %s\n\n", strings.Join(s.Keywords, ", ")))
			}
			for _, ex := range s.Examples {
				output.WriteString(fmt.Sprintf("- %s\n", ex))
			}
			if len(s.Examples) > 0 {
				output.WriteString("\n")
			}
			if s.Template != "" {
				output.WriteString(fmt.Sprintf("```\n%s\n```\n\n", s.Template))
			}
			output.WriteString(fmt.Sprintf("**Impact:** %s\n\n", impactLine(s)))
		}
	}

	return output.String(), nil
}

func (rmf *ReportMarkdownFormatter) SupportedType() string {
	return "Report"
}
