package index

import (
	"context"
	"errors"
	"testing"

	"github.com/shopsense/shopsense/internal/db"
	"github.com/shopsense/shopsense/internal/domain"
)

type mockKV struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte)}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKV) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := NewRedisStore(newMockKV())
	ctx := context.Background()

	want := testSnapshot(t, "sig-redis", testEntry("P1"))
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Signature() != "sig-redis" || got.Len() != 1 {
		t.Errorf("snapshot = %q with %d entries", got.Signature(), got.Len())
	}
}

func TestRedisStoreLoadMissingKey(t *testing.T) {
	store := NewRedisStore(newMockKV())

	_, err := store.Load(context.Background())
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Errorf("err = %v, want ErrIndexNotFound", err)
	}
}

func TestRedisStoreLoadFailure(t *testing.T) {
	kv := newMockKV()
	kv.getErr = errors.New("connection refused")
	store := NewRedisStore(kv)

	_, err := store.Load(context.Background())
	if err == nil || errors.Is(err, domain.ErrIndexNotFound) {
		t.Errorf("err = %v, want a transport error distinct from not-found", err)
	}
}

func TestRedisStoreSaveFailure(t *testing.T) {
	kv := newMockKV()
	kv.setErr = errors.New("read-only replica")
	store := NewRedisStore(kv)

	if err := store.Save(context.Background(), testSnapshot(t, "sig")); err == nil {
		t.Error("Save should surface store errors")
	}
}
