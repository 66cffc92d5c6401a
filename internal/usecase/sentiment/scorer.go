// Package sentiment scores review text on a [-1, 1] scale using a fixed
// polarity lexicon. Scoring one review never depends on any other review.
package sentiment

import (
	"strings"
	"unicode"
)

// negationWindow is how many preceding tokens a negator reaches.
const negationWindow = 2

// Scorer maps review text to a bounded sentiment value.
type Scorer struct{}

// New creates a sentiment scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score returns a sentiment value in [-1, 1]: positive above zero, negative
// below, exactly 0 for neutral, empty, or whitespace-only text.
func (s *Scorer) Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var pos, neg int
	for i, tok := range tokens {
		polarity := 0
		switch {
		case positiveWords[tok]:
			polarity = 1
		case negativeWords[tok]:
			polarity = -1
		default:
			continue
		}

		if negatedAt(tokens, i) {
			polarity = -polarity
		}
		if polarity > 0 {
			pos++
		} else {
			neg++
		}
	}

	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// negatedAt reports whether a negator appears shortly before position i.
func negatedAt(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
		if negators[tokens[j]] {
			return true
		}
	}
	return false
}

// tokenize lowercases and splits on non-letter runes, dropping apostrophes
// so contractions match the negator list ("don't" -> "dont").
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\'' || r == '’' {
			return -1
		}
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Fields(cleaned)
}
