package analysis

import (
	"strings"
	"unicode/utf8"
)

// MinAnalyzableChars is the smallest trimmed input, in characters, that is scored at all
const MinAnalyzableChars = 50

// Document is a normalized view of resume text shared by every scorer and rule
type Document struct {
	Raw       string
	Lower     string
	Lines     []string
	WordCount int
}

// Normalize lowercases the text, splits it into lines and counts whitespace-separated words
func Normalize(text string) Document {
	return Document{
		Raw:       text,
		Lower:     strings.ToLower(text),
		Lines:     strings.Split(text, "\n"),
		WordCount: len(strings.Fields(text)),
	}
}

// NoAnalysis describes input too short to be scored
type NoAnalysis struct {
	Reason   string `json:"reason"`
	Chars    int    `json:"chars"`
	MinChars int    `json:"minChars"`
}

// CheckAnalyzable reports whether text clears the minimum length gate
// When it does not, the returned NoAnalysis explains why
func CheckAnalyzable(text string) (NoAnalysis, bool) {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n >= MinAnalyzableChars {
		return NoAnalysis{}, true
	}
	return NoAnalysis{
		Reason:   "resume text is too short to analyze",
		Chars:    n,
		MinChars: MinAnalyzableChars,
	}, false
}
