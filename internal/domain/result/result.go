// Package result defines search and ranking result value objects.
package result

import "github.com/shopsense/shopsense/internal/domain/index"

// SearchResult is a single retrieval hit: produced fresh per query, never persisted.
type SearchResult struct {
	productID  string
	document   string
	meta       index.Metadata
	similarity float64
}

// NewSearch creates a search result. similarity is cosine similarity in [-1, 1].
func NewSearch(productID, document string, meta index.Metadata, similarity float64) SearchResult {
	return SearchResult{productID: productID, document: document, meta: meta, similarity: similarity}
}

// ProductID returns the product identifier.
func (r *SearchResult) ProductID() string { return r.productID }

// Document returns the embedding source text.
func (r *SearchResult) Document() string { return r.document }

// Meta returns the metadata snapshot captured at index build time.
func (r *SearchResult) Meta() index.Metadata { return r.meta }

// Similarity returns the cosine similarity to the query.
func (r *SearchResult) Similarity() float64 { return r.similarity }

// RankedResult is a search result with preference and blended scores attached.
type RankedResult struct {
	SearchResult
	preferenceScore float64
	finalScore      float64
}

// NewRanked attaches ranking scores to a search result.
func NewRanked(sr SearchResult, preferenceScore, finalScore float64) RankedResult {
	return RankedResult{SearchResult: sr, preferenceScore: preferenceScore, finalScore: finalScore}
}

// PreferenceScore returns the preference component in [0, 1].
func (r *RankedResult) PreferenceScore() float64 { return r.preferenceScore }

// FinalScore returns the blended score used for ordering.
func (r *RankedResult) FinalScore() float64 { return r.finalScore }
