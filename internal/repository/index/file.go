// Package index persists vector index snapshots. Two backends: a local
// JSON file and a Redis key. Both publish atomically: readers either see
// the previous complete snapshot or the new one, never a partial write.
package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopsense/shopsense/internal/domain"
	domidx "github.com/shopsense/shopsense/internal/domain/index"
)

// FileStore persists snapshots as a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed snapshot store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted snapshot. Returns domain.ErrIndexNotFound when
// no snapshot file exists.
func (s *FileStore) Load(_ context.Context) (domidx.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domidx.Snapshot{}, domain.ErrIndexNotFound
		}
		return domidx.Snapshot{}, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return domidx.Snapshot{}, fmt.Errorf("snapshot %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes the snapshot to a temporary file in the target directory and
// renames it into place. Rename is atomic on POSIX filesystems, so a
// concurrent Load never observes a partially written snapshot.
func (s *FileStore) Save(_ context.Context, snap domidx.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".index-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}
