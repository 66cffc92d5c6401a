package recommend

import (
	"context"

	"github.com/shopsense/shopsense/internal/domain/catalog"
	domidx "github.com/shopsense/shopsense/internal/domain/index"
	"github.com/shopsense/shopsense/internal/domain/prefs"
	"github.com/shopsense/shopsense/internal/domain/result"
	"github.com/shopsense/shopsense/internal/usecase/compare"
)

// CatalogSource serves the current source tables.
type CatalogSource interface {
	Tables() (catalog.Tables, error)
}

// Indexer returns a current index snapshot, building one when needed.
type Indexer interface {
	BuildOrLoad(ctx context.Context, products *catalog.ProductTable, force bool) (domidx.Snapshot, error)
}

// Retriever runs semantic search over a snapshot.
type Retriever interface {
	Search(ctx context.Context, snap domidx.Snapshot, query string, k int) ([]result.SearchResult, error)
}

// Reranker re-orders search results by blended preference score.
type Reranker interface {
	Rerank(results []result.SearchResult, p prefs.Preferences, topK int) []result.RankedResult
}

// Summarizer renders the ranked results into a text digest.
type Summarizer interface {
	Generate(query string, ranked []result.RankedResult) string
}

// Comparator builds the side-by-side spec table.
type Comparator interface {
	Compare(products *catalog.ProductTable, specs *catalog.SpecTable, productIDs []string) compare.Result
}

// SentimentScorer scores one review text.
type SentimentScorer interface {
	Score(text string) float64
}
