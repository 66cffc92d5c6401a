// Package rank re-orders semantic search results using explicit user
// preferences. Preference misses penalize, never exclude: a semantically
// relevant item outside the price band or category stays in the list.
package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopsense/shopsense/internal/domain/prefs"
	"github.com/shopsense/shopsense/internal/domain/result"
)

// Service blends semantic similarity with preference fit.
type Service struct {
	weights Weights
}

// New creates a reranker with validated weights.
func New(weights Weights) (*Service, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("rank weights: %w", err)
	}
	return &Service{weights: weights}, nil
}

// Rerank scores every result against the preferences and returns the top
// topK by final score. Pure function of its inputs: ordering is final score
// descending, then similarity descending, then product id ascending.
func (s *Service) Rerank(results []result.SearchResult, p prefs.Preferences, topK int) []result.RankedResult {
	ranked := make([]result.RankedResult, 0, len(results))
	for i := range results {
		r := results[i]
		prefScore := s.preferenceScore(&r, &p)
		final := s.weights.Alpha*normalizeSimilarity(r.Similarity()) + (1-s.weights.Alpha)*prefScore
		ranked = append(ranked, result.NewRanked(r, prefScore, final))
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore() != ranked[j].FinalScore() {
			return ranked[i].FinalScore() > ranked[j].FinalScore()
		}
		if ranked[i].Similarity() != ranked[j].Similarity() {
			return ranked[i].Similarity() > ranked[j].Similarity()
		}
		return ranked[i].ProductID() < ranked[j].ProductID()
	})

	if topK >= 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// preferenceScore combines the three bounded criteria with their weights.
func (s *Service) preferenceScore(r *result.SearchResult, p *prefs.Preferences) float64 {
	var categoryMatch float64
	if p.MatchesCategory(r.Meta().Category) {
		categoryMatch = 1
	}

	// An inverted band means "no price preference" and disables the
	// penalty instead of failing every item.
	var priceFit float64
	if p.InPriceBand(r.Meta().Price) {
		priceFit = 1
	}

	keywordFit := keywordFit(r.Document(), p.Keywords())

	return s.weights.Category*categoryMatch + s.weights.Price*priceFit + s.weights.Keyword*keywordFit
}

// keywordFit is the fraction of keywords occurring in the document as a
// case-insensitive substring. Empty keyword list scores 0.
func keywordFit(document string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	doc := strings.ToLower(document)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(doc, strings.ToLower(kw)) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// normalizeSimilarity maps cosine similarity from [-1, 1] to [0, 1].
func normalizeSimilarity(sim float64) float64 {
	return (sim + 1) / 2
}
