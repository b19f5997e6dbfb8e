package analysis

import (
	"fmt"

	"resumeradar/internal/errors"
)

// AnalysisResult holds every category score and the overall score
type AnalysisResult struct {
	Categories []CategoryScore `json:"categories"`
	Overall    OverallScore    `json:"overall"`
	WordCount  int             `json:"wordCount"`
}

// Category returns the score for c
func (r AnalysisResult) Category(c Category) (CategoryScore, bool) {
	for _, s := range r.Categories {
		if s.Category == c {
			return s, true
		}
	}
	return CategoryScore{}, false
}

// ReportStatus tells whether a report carries scores
type ReportStatus string

const (
	StatusAnalyzed   ReportStatus = "analyzed"
	StatusNoAnalysis ReportStatus = "no_analysis"
)

// Include selects which parts Report computes
type Include uint8

const (
	IncludeScores Include = 1 << iota
	IncludeSuggestions

	IncludeAll = IncludeScores | IncludeSuggestions
)

// Report is the combined output envelope used by the CLI and HTTP API
type Report struct {
	Status      ReportStatus    `json:"status"`
	Persona     PersonaID       `json:"persona"`
	Analysis    *AnalysisResult `json:"analysis,omitempty"`
	Suggestions []Suggestion    `json:"suggestions,omitempty"`
	NoAnalysis  *NoAnalysis     `json:"noAnalysis,omitempty"`
}

// Engine scores resumes and generates suggestions from a fixed Rules value
// It holds no mutable state and is safe for concurrent use
type Engine struct {
	rules     Rules
	matcher   KeywordMatcher
	scorers   []Scorer
	suggester *SuggestionGenerator
}

// Option configures an Engine
type Option func(*Engine)

// WithMatcher replaces the default substring matcher
func WithMatcher(m KeywordMatcher) Option {
	return func(e *Engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

// NewEngine builds an engine over a private copy of rules
func NewEngine(rules Rules, opts ...Option) *Engine {
	e := &Engine{
		rules:   rules.Clone(),
		matcher: SubstringMatcher{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.scorers = []Scorer{
		NewKeywordScorer(e.rules.Taxonomy, e.matcher),
		NewFormattingScorer(),
		NewSectionScorer(e.matcher),
		NewLengthScorer(),
	}
	e.suggester = NewSuggestionGenerator(e.matcher, NewTrendOverlay(e.rules.Trends, e.matcher))
	return e
}

// Rules returns a copy of the tables the engine was built with
func (e *Engine) Rules() Rules {
	return e.rules.Clone()
}

func (e *Engine) persona(id PersonaID) (PersonaTemplate, error) {
	p, ok := e.rules.Persona(id)
	if !ok {
		return PersonaTemplate{}, errors.NewValidationError(errors.ErrCodeUnknownPersona,
			fmt.Sprintf("unknown persona %q", id), nil)
	}
	return p, nil
}

// AnalyzeResume scores text. ok is false when the text is too short to analyze;
// err is non-nil only for a persona that is not loaded
func (e *Engine) AnalyzeResume(text string, persona PersonaID) (AnalysisResult, bool, error) {
	if _, err := e.persona(persona); err != nil {
		return AnalysisResult{}, false, err
	}
	if _, ok := CheckAnalyzable(text); !ok {
		return AnalysisResult{}, false, nil
	}
	return e.score(Normalize(text)), true, nil
}

// GenerateSuggestions returns the ordered suggestion list for text and persona
// ok and err follow AnalyzeResume
func (e *Engine) GenerateSuggestions(text string, persona PersonaID) ([]Suggestion, bool, error) {
	tpl, err := e.persona(persona)
	if err != nil {
		return nil, false, err
	}
	if _, ok := CheckAnalyzable(text); !ok {
		return nil, false, nil
	}
	return e.suggester.Generate(Normalize(text), tpl), true, nil
}

// Report runs the requested parts of the analysis and wraps them in one envelope
func (e *Engine) Report(text string, persona PersonaID, include Include) (Report, error) {
	tpl, err := e.persona(persona)
	if err != nil {
		return Report{}, err
	}
	report := Report{Persona: persona}
	if na, ok := CheckAnalyzable(text); !ok {
		report.Status = StatusNoAnalysis
		report.NoAnalysis = &na
		return report, nil
	}

	report.Status = StatusAnalyzed
	doc := Normalize(text)
	if include&IncludeScores != 0 {
		result := e.score(doc)
		report.Analysis = &result
	}
	if include&IncludeSuggestions != 0 {
		report.Suggestions = e.suggester.Generate(doc, tpl)
	}
	return report, nil
}

func (e *Engine) score(doc Document) AnalysisResult {
	scores := make([]CategoryScore, 0, len(e.scorers))
	for _, s := range e.scorers {
		scores = append(scores, s.Score(doc))
	}
	return AnalysisResult{
		Categories: scores,
		Overall:    Aggregate(scores),
		WordCount:  doc.WordCount,
	}
}
