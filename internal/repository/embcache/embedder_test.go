package embcache

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/shopsense/shopsense/internal/db"
	"github.com/shopsense/shopsense/internal/domain"
)

type mockStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

type mockEmbedder struct {
	vec    []float32
	tokens int
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: m.tokens}, nil
}

func TestEmbedMissThenHit(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.5, -1.25, 3}, tokens: 7}
	cache := New(inner, newMockStore(), nil, zap.NewNop())
	ctx := context.Background()

	first, err := cache.Embed(ctx, "some document")
	if err != nil {
		t.Fatalf("Embed miss: %v", err)
	}
	if first.TotalTokens != 7 {
		t.Errorf("miss tokens = %d, want 7", first.TotalTokens)
	}

	second, err := cache.Embed(ctx, "some document")
	if err != nil {
		t.Fatalf("Embed hit: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if !reflect.DeepEqual(second.Embedding, inner.vec) {
		t.Errorf("hit vector = %v, want %v", second.Embedding, inner.vec)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit tokens = %d, want 0", second.TotalTokens)
	}
}

func TestEmbedDifferentTextsGetOwnEntries(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{1}}
	cache := New(inner, newMockStore(), nil, zap.NewNop())
	ctx := context.Background()

	if _, err := cache.Embed(ctx, "text a"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if _, err := cache.Embed(ctx, "text b"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestEmbedStoreFailuresFallThrough(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{1, 2}}
	store := newMockStore()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	cache := New(inner, store, nil, zap.NewNop())

	res, err := cache.Embed(context.Background(), "doc")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !reflect.DeepEqual(res.Embedding, inner.vec) {
		t.Errorf("vector = %v", res.Embedding)
	}
}

func TestEmbedInnerErrorPropagates(t *testing.T) {
	wantErr := errors.New("provider down")
	cache := New(&mockEmbedder{err: wantErr}, newMockStore(), nil, zap.NewNop())

	if _, err := cache.Embed(context.Background(), "doc"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped provider error", err)
	}
}

func TestVectorBytesRoundTrip(t *testing.T) {
	vec := []float32{0, -0.5, 1.25, 3.14159}
	got, err := bytesToVector(vectorToCacheBytes(vec))
	if err != nil {
		t.Fatalf("bytesToVector: %v", err)
	}
	if !reflect.DeepEqual(got, vec) {
		t.Errorf("round trip = %v, want %v", got, vec)
	}

	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Error("truncated payload should fail to parse")
	}
}
