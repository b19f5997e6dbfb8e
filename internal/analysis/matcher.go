package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeywordMatcher decides whether a term occurs in a document
type KeywordMatcher interface {
	Contains(doc Document, term string) bool
}

// SubstringMatcher matches terms as case-insensitive raw substrings
// "java" therefore also matches inside "javascript"
type SubstringMatcher struct{}

func (SubstringMatcher) Contains(doc Document, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(doc.Lower, strings.ToLower(term))
}

// WholeWordMatcher matches terms case-insensitively but only where the term is not
// embedded in a longer word. Edges of a term that are punctuation ("%", "$") match anywhere
type WholeWordMatcher struct{}

func (WholeWordMatcher) Contains(doc Document, term string) bool {
	t := strings.ToLower(term)
	if t == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(t)
	last, _ := utf8.DecodeLastRuneInString(t)
	checkBefore := isWordRune(first)
	checkAfter := isWordRune(last)

	s := doc.Lower
	for off := 0; off < len(s); {
		i := strings.Index(s[off:], t)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(t)
		if (!checkBefore || boundaryBefore(s, start)) && (!checkAfter || boundaryAfter(s, end)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		off = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

// MatcherByName returns the matcher registered under name
func MatcherByName(name string) (KeywordMatcher, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "substring":
		return SubstringMatcher{}, true
	case "wholeword":
		return WholeWordMatcher{}, true
	default:
		return nil, false
	}
}

// CountMatches returns how many of terms occur in doc
func CountMatches(m KeywordMatcher, doc Document, terms []string) int {
	n := 0
	for _, term := range terms {
		if m.Contains(doc, term) {
			n++
		}
	}
	return n
}

// Missing returns the terms absent from doc, in their original order
func Missing(m KeywordMatcher, doc Document, terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if !m.Contains(doc, term) {
			out = append(out, term)
		}
	}
	return out
}

// Present returns the terms found in doc, in their original order
func Present(m KeywordMatcher, doc Document, terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if m.Contains(doc, term) {
			out = append(out, term)
		}
	}
	return out
}
