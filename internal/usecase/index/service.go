// Package index builds and loads the product vector index.
package index

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopsense/shopsense/internal/domain"
	"github.com/shopsense/shopsense/internal/domain/catalog"
	domidx "github.com/shopsense/shopsense/internal/domain/index"
	"github.com/shopsense/shopsense/internal/metrics"
)

// Service implements the build-or-load lifecycle of the vector index.
type Service struct {
	store      Store
	embed      domain.Embedder
	model      string
	dimensions int
	logger     *zap.Logger

	mu sync.Mutex // builds are a critical section; loads stay lock-free
}

// New creates an index service. dimensions may be 0 when the provider's
// default dimension is used; the built snapshot records the actual one.
func New(store Store, embed domain.Embedder, model string, dimensions int, logger *zap.Logger) *Service {
	return &Service{store: store, embed: embed, model: model, dimensions: dimensions, logger: logger}
}

// BuildOrLoad returns a current snapshot for the products table. When a
// persisted snapshot exists with a matching build signature and force is
// false, it is loaded without any re-embedding. Otherwise every product is
// embedded and the full snapshot is published atomically. A failed build
// leaves the previously persisted snapshot untouched.
func (s *Service) BuildOrLoad(ctx context.Context, products *catalog.ProductTable, force bool) (domidx.Snapshot, error) {
	sig := Signature(products, s.model, s.dimensions)

	if !force {
		snap, err := s.store.Load(ctx)
		switch {
		case err == nil && snap.Signature() == sig:
			metrics.IndexBuildsTotal.WithLabelValues("loaded").Inc()
			metrics.IndexEntries.Set(float64(snap.Len()))
			return snap, nil
		case err == nil:
			s.logger.Info("Index snapshot stale, rebuilding",
				zap.String("stored_signature", snap.Signature()),
				zap.String("current_signature", sig),
			)
		case errors.Is(err, domain.ErrIndexNotFound):
			s.logger.Info("No index snapshot found, building")
		default:
			// Unreadable snapshot: rebuild rather than fail the request.
			s.logger.Warn("Failed to load index snapshot, rebuilding", zap.Error(err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !force {
		// Another caller may have finished the same build while we waited.
		if snap, err := s.store.Load(ctx); err == nil && snap.Signature() == sig {
			metrics.IndexBuildsTotal.WithLabelValues("loaded").Inc()
			metrics.IndexEntries.Set(float64(snap.Len()))
			return snap, nil
		}
	}

	start := time.Now()
	snap, err := s.build(ctx, products, sig)
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues("error").Inc()
		return domidx.Snapshot{}, err
	}

	if err := s.store.Save(ctx, snap); err != nil {
		metrics.IndexBuildsTotal.WithLabelValues("error").Inc()
		return domidx.Snapshot{}, fmt.Errorf("persist snapshot: %w", err)
	}

	metrics.IndexBuildsTotal.WithLabelValues("built").Inc()
	metrics.IndexBuildDuration.Observe(time.Since(start).Seconds())
	metrics.IndexEntries.Set(float64(snap.Len()))

	s.logger.Info("Index built",
		zap.Int("entries", snap.Len()),
		zap.Int("dimensions", snap.Dimensions()),
		zap.Duration("took", time.Since(start)),
	)
	return snap, nil
}

// build embeds every product document. Any embedding failure aborts the
// whole build so the persisted snapshot is never replaced by a partial one.
func (s *Service) build(ctx context.Context, products *catalog.ProductTable, sig string) (domidx.Snapshot, error) {
	rows := products.Rows()
	entries := make([]domidx.Entry, 0, len(rows))
	dims := 0

	for i := range rows {
		p := &rows[i]
		doc := p.EmbeddingText()

		res, err := s.embed.Embed(ctx, doc)
		if err != nil {
			return domidx.Snapshot{}, fmt.Errorf("embed product %s: %w", p.ID(), err)
		}
		if dims == 0 {
			dims = len(res.Embedding)
		}
		if len(res.Embedding) != dims {
			return domidx.Snapshot{}, fmt.Errorf(
				"embed product %s: got %d dimensions, previous documents had %d: %w",
				p.ID(), len(res.Embedding), dims, domain.ErrVectorDimMismatch)
		}

		entries = append(entries, domidx.NewEntry(p.ID(), doc, res.Embedding, domidx.Metadata{
			ProductID: p.ID(),
			Title:     p.Title(),
			Category:  p.Category(),
			Price:     p.Price(),
		}))
	}

	if dims == 0 {
		// Empty catalog: keep the configured dimension so query embedding
		// checks stay meaningful.
		dims = s.dimensions
		if dims <= 0 {
			dims = 1
		}
	}

	snap, err := domidx.NewSnapshot(sig, s.model, dims, entries)
	if err != nil {
		return domidx.Snapshot{}, fmt.Errorf("assemble snapshot: %w", err)
	}
	return snap, nil
}
