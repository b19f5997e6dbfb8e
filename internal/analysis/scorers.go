package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Category names one scored dimension of a resume
type Category string

const (
	CategoryKeywords   Category = "keywords"
	CategoryFormatting Category = "formatting"
	CategorySections   Category = "sections"
	CategoryLength     Category = "length"
)

// CategoryScore is the result of one scorer
type CategoryScore struct {
	Category    Category `json:"category"`
	Score       int      `json:"score"`
	Weight      float64  `json:"weight"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Scorer produces a 0-100 score for one category
type Scorer interface {
	Category() Category
	Score(doc Document) CategoryScore
}

func newCategoryScore(c Category) CategoryScore {
	return CategoryScore{
		Category:    c,
		Weight:      float64(categoryWeights[c]) / 100,
		Issues:      []string{},
		Suggestions: []string{},
	}
}

func (s *CategoryScore) flag(issue, improvement string) {
	s.Issues = append(s.Issues, issue)
	s.Suggestions = append(s.Suggestions, improvement)
}

// Keyword thresholds
const (
	MinTechnicalTerms = 3
	MinActionVerbs    = 5
	MinMetricTerms    = 3
	MinSoftSkills     = 2

	keywordCheckPoints = 25
)

// KeywordScorer awards 25 points for each taxonomy group that meets its threshold
type KeywordScorer struct {
	taxonomy Taxonomy
	matcher  KeywordMatcher
}

func NewKeywordScorer(taxonomy Taxonomy, matcher KeywordMatcher) *KeywordScorer {
	return &KeywordScorer{taxonomy: taxonomy, matcher: matcher}
}

func (k *KeywordScorer) Category() Category { return CategoryKeywords }

func (k *KeywordScorer) Score(doc Document) CategoryScore {
	result := newCategoryScore(CategoryKeywords)
	checks := []struct {
		terms       []string
		min         int
		issue       string
		improvement string
	}{
		{k.taxonomy.Technical, MinTechnicalTerms,
			"Few technical skills detected (%d found, %d+ recommended)",
			"Add relevant technical skills such as languages, frameworks and tools"},
		{k.taxonomy.ActionVerbs, MinActionVerbs,
			"Limited use of action verbs (%d found, %d+ recommended)",
			"Start achievements with strong action verbs like Developed, Implemented or Led"},
		{k.taxonomy.Metrics, MinMetricTerms,
			"Few quantifiable achievements (%d found, %d+ recommended)",
			"Quantify results with percentages, dollar amounts or user counts"},
		{k.taxonomy.SoftSkills, MinSoftSkills,
			"Soft skills are underrepresented (%d found, %d+ recommended)",
			"Mention soft skills such as leadership, communication or collaboration"},
	}
	for _, c := range checks {
		found := CountMatches(k.matcher, doc, c.terms)
		if found >= c.min {
			result.Score += keywordCheckPoints
			continue
		}
		result.flag(fmt.Sprintf(c.issue, found, c.min), c.improvement)
	}
	return result
}

// Formatting points
const (
	bulletPoints    = 30
	paragraphPoints = 25
	contactPoints   = 45
)

var phonePattern = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)

// FormattingScorer checks for bullets, paragraph breaks and contact details
type FormattingScorer struct{}

func NewFormattingScorer() *FormattingScorer { return &FormattingScorer{} }

func (f *FormattingScorer) Category() Category { return CategoryFormatting }

func (f *FormattingScorer) Score(doc Document) CategoryScore {
	result := newCategoryScore(CategoryFormatting)

	if hasBulletLine(doc.Lines) {
		result.Score += bulletPoints
	} else {
		result.flag("Inconsistent bullet formatting",
			"Use bullet points (• or -) to list responsibilities and achievements")
	}

	if strings.Contains(doc.Raw, "\n\n") {
		result.Score += paragraphPoints
	} else {
		result.flag("Poor section spacing",
			"Separate sections with blank lines to improve readability")
	}

	if strings.Contains(doc.Raw, "@") && phonePattern.MatchString(doc.Raw) {
		result.Score += contactPoints
	} else {
		result.flag("Missing contact information",
			"Include both an email address and a phone number")
	}
	return result
}

func hasBulletLine(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-") {
			return true
		}
	}
	return false
}

// RequiredSections are the headings every resume is expected to carry
var RequiredSections = []string{"Professional Summary", "Technical Skills", "Experience", "Education"}

// SectionScorer scores the share of required section headings present
type SectionScorer struct {
	matcher KeywordMatcher
}

func NewSectionScorer(matcher KeywordMatcher) *SectionScorer {
	return &SectionScorer{matcher: matcher}
}

func (s *SectionScorer) Category() Category { return CategorySections }

func (s *SectionScorer) Score(doc Document) CategoryScore {
	result := newCategoryScore(CategorySections)
	missing := Missing(s.matcher, doc, RequiredSections)
	found := len(RequiredSections) - len(missing)
	result.Score = roundPercent(float64(found) / float64(len(RequiredSections)) * 100)
	if len(missing) > 0 {
		list := strings.Join(missing, ", ")
		result.flag("Missing sections: "+list, "Add the missing sections: "+list)
	}
	return result
}

// Ideal word count range
const (
	MinIdealWords = 300
	MaxIdealWords = 800
)

// LengthScorer rewards word counts inside the ideal range
type LengthScorer struct{}

func NewLengthScorer() *LengthScorer { return &LengthScorer{} }

func (l *LengthScorer) Category() Category { return CategoryLength }

func (l *LengthScorer) Score(doc Document) CategoryScore {
	result := newCategoryScore(CategoryLength)
	wc := doc.WordCount
	switch {
	case wc < MinIdealWords:
		result.Score = roundPercent(float64(wc) / MinIdealWords * 100)
		result.flag(fmt.Sprintf("Resume too short (%d words, %d-%d recommended)", wc, MinIdealWords, MaxIdealWords),
			"Expand on your experience, projects and measurable achievements")
	case wc > MaxIdealWords:
		result.Score = roundPercent(100 - float64(wc-MaxIdealWords)/10)
		result.flag(fmt.Sprintf("Resume too long (%d words, %d-%d recommended)", wc, MinIdealWords, MaxIdealWords),
			"Condense older or less relevant experience")
	default:
		result.Score = 100
	}
	return result
}

// roundPercent clamps v to [0, 100] and rounds half away from zero
func roundPercent(v float64) int {
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
