package index

import (
	"context"

	domidx "github.com/shopsense/shopsense/internal/domain/index"
)

// Store persists complete index snapshots. Save must be atomic: a
// concurrent Load sees either the prior snapshot or the new one.
type Store interface {
	Load(ctx context.Context) (domidx.Snapshot, error)
	Save(ctx context.Context, snap domidx.Snapshot) error
}
