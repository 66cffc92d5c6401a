package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func waitForCalls(t *testing.T, calls *atomic.Int32, want int32, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if calls.Load() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("calls = %d after %v, want >= %d", calls.Load(), timeout, want)
}

func TestWatcherFiresOnWatchedFileChange(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w := New(dir, []string{"products.csv"}, 50*time.Millisecond, func() { calls.Add(1) }, zap.NewNop())
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeFile(t, dir, "products.csv")
	waitForCalls(t, &calls, 1, 3*time.Second)
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w := New(dir, []string{"products.csv"}, 50*time.Millisecond, func() { calls.Add(1) }, zap.NewNop())
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeFile(t, dir, "notes.txt")
	time.Sleep(300 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0 for unrelated files", calls.Load())
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w := New(dir, []string{"products.csv"}, 200*time.Millisecond, func() { calls.Add(1) }, zap.NewNop())
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		writeFile(t, dir, "products.csv")
		time.Sleep(20 * time.Millisecond)
	}

	waitForCalls(t, &calls, 1, 3*time.Second)
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 for a burst inside the debounce window", got)
	}
}

func TestWatcherStartFailsOnMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent"), []string{"a"}, 0, func() {}, zap.NewNop())
	if err := w.Start(); err == nil {
		w.Stop()
		t.Fatal("Start should fail for a missing directory")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, []string{"a"}, 0, func() {}, zap.NewNop())
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
}
