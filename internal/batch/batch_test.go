package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/StephenWattam/lpsolve/internal/cache"
	"github.com/StephenWattam/lpsolve/internal/history"
	"github.com/StephenWattam/lpsolve/internal/simplex"
)

const sampleLP = `Maximize
 obj: 3 x + 5 y
Subject To
 c1: x + y <= 4
Bounds
 0 <= x
 0 <= y
End
`

func TestRunOnceSolvesEveryLPFileAndRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.lp"), []byte(sampleLP), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not an lp file"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store, err := history.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer store.Close()

	s := New(dir, store, cache.New(10), simplex.DefaultOptions())
	s.runOnce()

	runs, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d recorded runs, want 1 (ignore.txt must be skipped)", len(runs))
	}
}

func TestRunOnceSkipsWhileAlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil, nil, simplex.DefaultOptions())
	s.running = true
	// Should return immediately without panicking or blocking, and must
	// leave the running flag untouched since this call is the skip path.
	s.runOnce()
	if !s.running {
		t.Errorf("runOnce should not have reset running when skipping")
	}
}

func TestSolveOneReturnsErrorForUnparsableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lp")
	if err := os.WriteFile(path, []byte("not a valid lp document"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(dir, nil, nil, simplex.DefaultOptions())
	if err := s.solveOne(path); err == nil {
		t.Fatalf("expected an error for an unparsable file")
	}
}

func TestSolveOneSucceedsWithoutHistoryStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lp")
	if err := os.WriteFile(path, []byte(sampleLP), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(dir, nil, nil, simplex.DefaultOptions())
	if err := s.solveOne(path); err != nil {
		t.Fatalf("solveOne: %v", err)
	}
}

func TestSolveOneReusesCachedProblem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lp")
	if err := os.WriteFile(path, []byte(sampleLP), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := cache.New(10)
	s := New(dir, nil, c, simplex.DefaultOptions())
	if err := s.solveOne(path); err != nil {
		t.Fatalf("solveOne: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("cache Len after first solve: got %d, want 1", c.Len())
	}

	if err := s.solveOne(path); err != nil {
		t.Fatalf("solveOne (second run): %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("re-solving the same file should reuse the cached problem, not grow the cache: got Len=%d", c.Len())
	}
}
