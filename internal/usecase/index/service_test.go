package index

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/shopsense/shopsense/internal/domain"
	"github.com/shopsense/shopsense/internal/domain/catalog"
	domidx "github.com/shopsense/shopsense/internal/domain/index"
	"github.com/shopsense/shopsense/internal/domain/product"
)

// --- Mocks ---

type mockStore struct {
	snap      domidx.Snapshot
	hasSnap   bool
	loadErr   error
	saveErr   error
	saveCalls int
}

func (m *mockStore) Load(_ context.Context) (domidx.Snapshot, error) {
	if m.loadErr != nil {
		return domidx.Snapshot{}, m.loadErr
	}
	if !m.hasSnap {
		return domidx.Snapshot{}, domain.ErrIndexNotFound
	}
	return m.snap, nil
}

func (m *mockStore) Save(_ context.Context, snap domidx.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = snap
	m.hasSnap = true
	m.saveCalls++
	return nil
}

type countingEmbedder struct {
	vec   []float32
	calls int
	// failAt aborts the n-th call (1-based) when set.
	failAt  int
	failErr error
}

func (m *countingEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.failAt > 0 && m.calls == m.failAt {
		return domain.EmbeddingResult{}, m.failErr
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

// --- Helpers ---

func testProducts(t *testing.T, n int) *catalog.ProductTable {
	t.Helper()
	rows := make([]product.Product, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('A' + i))
		p, err := product.New("P"+id, "Product "+id, "Headphones", float64(100*(i+1)), "desc "+id)
		if err != nil {
			t.Fatalf("product.New: %v", err)
		}
		rows = append(rows, p)
	}
	table, err := catalog.NewProductTable(rows)
	if err != nil {
		t.Fatalf("NewProductTable: %v", err)
	}
	return &table
}

// --- Tests ---

func TestBuildOrLoadBuildsWhenEmpty(t *testing.T) {
	store := &mockStore{}
	emb := &countingEmbedder{vec: []float32{1, 0, 0}}
	svc := New(store, emb, "test-model", 3, zap.NewNop())
	products := testProducts(t, 3)

	snap, err := svc.BuildOrLoad(context.Background(), products, false)
	if err != nil {
		t.Fatalf("BuildOrLoad: %v", err)
	}
	if snap.Len() != 3 {
		t.Errorf("entries = %d, want 3", snap.Len())
	}
	if snap.Dimensions() != 3 {
		t.Errorf("dimensions = %d, want 3", snap.Dimensions())
	}
	if emb.calls != 3 {
		t.Errorf("embed calls = %d, want 3", emb.calls)
	}
	if store.saveCalls != 1 {
		t.Errorf("save calls = %d, want 1", store.saveCalls)
	}
	if snap.Signature() != Signature(products, "test-model", 3) {
		t.Error("snapshot signature must match the table signature")
	}
}

func TestBuildOrLoadSecondCallDoesNotReembed(t *testing.T) {
	store := &mockStore{}
	emb := &countingEmbedder{vec: []float32{1, 0}}
	svc := New(store, emb, "test-model", 2, zap.NewNop())
	products := testProducts(t, 2)

	if _, err := svc.BuildOrLoad(context.Background(), products, false); err != nil {
		t.Fatalf("first BuildOrLoad: %v", err)
	}
	calls := emb.calls

	snap, err := svc.BuildOrLoad(context.Background(), products, false)
	if err != nil {
		t.Fatalf("second BuildOrLoad: %v", err)
	}
	if emb.calls != calls {
		t.Errorf("second call embedded %d more documents, want 0", emb.calls-calls)
	}
	if snap.Len() != 2 {
		t.Errorf("entries = %d, want 2", snap.Len())
	}
}

func TestBuildOrLoadForceRebuilds(t *testing.T) {
	store := &mockStore{}
	emb := &countingEmbedder{vec: []float32{1, 0}}
	svc := New(store, emb, "test-model", 2, zap.NewNop())
	products := testProducts(t, 2)

	if _, err := svc.BuildOrLoad(context.Background(), products, false); err != nil {
		t.Fatalf("first BuildOrLoad: %v", err)
	}
	if _, err := svc.BuildOrLoad(context.Background(), products, true); err != nil {
		t.Fatalf("forced BuildOrLoad: %v", err)
	}
	if emb.calls != 4 {
		t.Errorf("embed calls = %d, want 4 (2 per build)", emb.calls)
	}
	if store.saveCalls != 2 {
		t.Errorf("save calls = %d, want 2", store.saveCalls)
	}
}

func TestBuildOrLoadRebuildsOnSignatureChange(t *testing.T) {
	store := &mockStore{}
	emb := &countingEmbedder{vec: []float32{1, 0}}
	svc := New(store, emb, "test-model", 2, zap.NewNop())

	if _, err := svc.BuildOrLoad(context.Background(), testProducts(t, 2), false); err != nil {
		t.Fatalf("first BuildOrLoad: %v", err)
	}

	// A third product changes the canonical table contents.
	if _, err := svc.BuildOrLoad(context.Background(), testProducts(t, 3), false); err != nil {
		t.Fatalf("second BuildOrLoad: %v", err)
	}
	if emb.calls != 5 {
		t.Errorf("embed calls = %d, want 5", emb.calls)
	}
	if store.snap.Len() != 3 {
		t.Errorf("persisted entries = %d, want 3", store.snap.Len())
	}
}

func TestBuildAbortsOnEmbedErrorLeavingStoreUntouched(t *testing.T) {
	store := &mockStore{}
	wantErr := errors.New("provider down")
	emb := &countingEmbedder{vec: []float32{1, 0}, failAt: 2, failErr: wantErr}
	svc := New(store, emb, "test-model", 2, zap.NewNop())

	_, err := svc.BuildOrLoad(context.Background(), testProducts(t, 3), false)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
	if store.saveCalls != 0 {
		t.Error("a failed build must not persist anything")
	}
	if store.hasSnap {
		t.Error("store should remain empty after a failed build")
	}
}

func TestBuildEmptyCatalog(t *testing.T) {
	store := &mockStore{}
	emb := &countingEmbedder{vec: []float32{1, 0}}
	svc := New(store, emb, "test-model", 1536, zap.NewNop())

	table, err := catalog.NewProductTable(nil)
	if err != nil {
		t.Fatalf("NewProductTable: %v", err)
	}

	snap, err := svc.BuildOrLoad(context.Background(), &table, false)
	if err != nil {
		t.Fatalf("BuildOrLoad: %v", err)
	}
	if snap.Len() != 0 {
		t.Errorf("entries = %d, want 0", snap.Len())
	}
	if snap.Dimensions() != 1536 {
		t.Errorf("dimensions = %d, want configured 1536", snap.Dimensions())
	}
	if emb.calls != 0 {
		t.Errorf("embed calls = %d, want 0", emb.calls)
	}
}

func TestSignatureSensitivity(t *testing.T) {
	products := testProducts(t, 2)

	base := Signature(products, "model-a", 4)
	if base != Signature(products, "model-a", 4) {
		t.Error("signature must be deterministic")
	}
	if base == Signature(products, "model-b", 4) {
		t.Error("model change must change the signature")
	}
	if base == Signature(products, "model-a", 8) {
		t.Error("dimension change must change the signature")
	}
	if base == Signature(testProducts(t, 3), "model-a", 4) {
		t.Error("content change must change the signature")
	}
}
