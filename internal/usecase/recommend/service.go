// Package recommend orchestrates one recommendation request: index
// build-or-load, semantic retrieval, preference re-ranking, and the
// downstream summary, comparison, and review sentiment views.
package recommend

import (
	"context"
	"fmt"

	"github.com/shopsense/shopsense/internal/domain/catalog"
	"github.com/shopsense/shopsense/internal/domain/prefs"
	"github.com/shopsense/shopsense/internal/domain/result"
	"github.com/shopsense/shopsense/internal/usecase/compare"
)

// ScoredReview is a review annotated with its sentiment value. The score is
// derived per request and never written back to the review table.
type ScoredReview struct {
	Review    catalog.Review
	Sentiment float64
}

// Recommendation is the full response for one query.
type Recommendation struct {
	Items        []result.RankedResult
	Summary      string
	Comparison   compare.Result
	ReviewSample []ScoredReview
}

// Service wires the pipeline stages together.
type Service struct {
	source     CatalogSource
	indexer    Indexer
	retriever  Retriever
	reranker   Reranker
	summarizer Summarizer
	comparator Comparator
	sentiment  SentimentScorer
	sampleSize int
}

// New creates a recommendation service. sampleSize bounds how many of the
// top ranked products contribute reviews and comparison rows.
func New(
	source CatalogSource,
	indexer Indexer,
	retriever Retriever,
	reranker Reranker,
	summarizer Summarizer,
	comparator Comparator,
	sentiment SentimentScorer,
	sampleSize int,
) *Service {
	if sampleSize <= 0 {
		sampleSize = 3
	}
	return &Service{
		source:     source,
		indexer:    indexer,
		retriever:  retriever,
		reranker:   reranker,
		summarizer: summarizer,
		comparator: comparator,
		sentiment:  sentiment,
		sampleSize: sampleSize,
	}
}

// Recommend runs the full pipeline for one query. The index call is cheap
// when the persisted snapshot's signature still matches the products table,
// so invoking it per request keeps results consistent with the data on disk.
func (s *Service) Recommend(ctx context.Context, query string, p prefs.Preferences, k int) (Recommendation, error) {
	tables, err := s.source.Tables()
	if err != nil {
		return Recommendation{}, fmt.Errorf("load catalog: %w", err)
	}

	snap, err := s.indexer.BuildOrLoad(ctx, &tables.Products, false)
	if err != nil {
		return Recommendation{}, fmt.Errorf("build or load index: %w", err)
	}

	results, err := s.retriever.Search(ctx, snap, query, k)
	if err != nil {
		return Recommendation{}, fmt.Errorf("search: %w", err)
	}

	ranked := s.reranker.Rerank(results, p, k)

	ids := make([]string, 0, len(ranked))
	for i := range ranked {
		ids = append(ids, ranked[i].ProductID())
	}

	rec := Recommendation{
		Items:      ranked,
		Summary:    s.summarizer.Generate(query, ranked),
		Comparison: s.comparator.Compare(&tables.Products, &tables.Specs, ids),
	}

	top := ids
	if len(top) > s.sampleSize {
		top = top[:s.sampleSize]
	}
	for _, r := range tables.Reviews.ForProducts(top) {
		rec.ReviewSample = append(rec.ReviewSample, ScoredReview{
			Review:    r,
			Sentiment: s.sentiment.Score(r.Text),
		})
	}

	return rec, nil
}

// CompareByIDs compares an explicit id list against the current tables.
func (s *Service) CompareByIDs(ids []string) (compare.Result, error) {
	tables, err := s.source.Tables()
	if err != nil {
		return compare.Result{}, fmt.Errorf("load catalog: %w", err)
	}
	return s.comparator.Compare(&tables.Products, &tables.Specs, ids), nil
}

// Rebuild forces a full index rebuild from the current tables.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	tables, err := s.source.Tables()
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	snap, err := s.indexer.BuildOrLoad(ctx, &tables.Products, true)
	if err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}
	return snap.Len(), nil
}
