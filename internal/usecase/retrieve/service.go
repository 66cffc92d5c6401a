// Package retrieve turns a free-text query into an ordered list of
// candidate products with similarity scores.
package retrieve

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopsense/shopsense/internal/domain"
	domidx "github.com/shopsense/shopsense/internal/domain/index"
	"github.com/shopsense/shopsense/internal/domain/result"
)

// Service performs semantic search over an index snapshot.
type Service struct {
	embed domain.Embedder
}

// New creates a retriever.
func New(embed domain.Embedder) *Service {
	return &Service{embed: embed}
}

// Search embeds the query and returns the top-k entries by cosine
// similarity, descending. Ties are broken by product id ascending so
// identical inputs always produce identical output. Length is
// min(k, snapshot size); an empty snapshot yields an empty slice.
func (s *Service) Search(ctx context.Context, snap domidx.Snapshot, query string, k int) ([]result.SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	if snap.Len() == 0 {
		return []result.SearchResult{}, nil
	}

	embRes, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	if len(embRes.Embedding) != snap.Dimensions() {
		return nil, fmt.Errorf(
			"query vector has %d dimensions, index has %d: %w",
			len(embRes.Embedding), snap.Dimensions(), domain.ErrVectorDimMismatch)
	}

	entries := snap.Entries()
	results := make([]result.SearchResult, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		sim := cosine(embRes.Embedding, e.Vector())
		results = append(results, result.NewSearch(e.ProductID(), e.Document(), e.Meta(), sim))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity() != results[j].Similarity() {
			return results[i].Similarity() > results[j].Similarity()
		}
		return results[i].ProductID() < results[j].ProductID()
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}
