package watcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatchTriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.stl")
	if err := os.WriteFile(file, []byte("solid a\nendsolid a\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	sw, err := NewSourceWatcher(50*time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("NewSourceWatcher failed: %v", err)
	}
	defer sw.Close()

	changed := make(chan string, 1)
	if err := sw.Watch(file, func(path string) { changed <- path }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(file, []byte("solid b\nendsolid b\n"), 0o644); err != nil {
		t.Fatalf("rewriting file: %v", err)
	}

	select {
	case path := <-changed:
		abs, _ := filepath.Abs(file)
		if path != abs {
			t.Errorf("callback got %q, want %q", path, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("change callback never fired")
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.stl")
	if err := os.WriteFile(file, []byte("v1"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	sw, err := NewSourceWatcher(200*time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("NewSourceWatcher failed: %v", err)
	}
	defer sw.Close()

	var calls atomic.Int32
	if err := sw.Watch(file, func(string) { calls.Add(1) }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// A burst of writes inside the debounce window collapses to one
	// callback
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(file, []byte("burst"), 0o644); err != nil {
			t.Fatalf("rewriting file: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("burst should collapse to 1 callback, got %d", got)
	}
}

func TestUnwatchStopsCallbacks(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.stl")
	if err := os.WriteFile(file, []byte("v1"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	sw, err := NewSourceWatcher(50*time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("NewSourceWatcher failed: %v", err)
	}
	defer sw.Close()

	var calls atomic.Int32
	if err := sw.Watch(file, func(string) { calls.Add(1) }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := sw.Unwatch(file); err != nil {
		t.Fatalf("Unwatch failed: %v", err)
	}

	if err := os.WriteFile(file, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewriting file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("unwatched file should not fire callbacks, got %d", got)
	}
}
