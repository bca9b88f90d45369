package snapshot

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_FiresOnSnapshotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"articles":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {
			fired <- struct{}{}
		})
	}()

	// Give the watcher a moment to register.
	time.Sleep(150 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{"version":1,"articles":[{"title":"A"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for watcher callback")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 4)
	go func() {
		_ = Watch(ctx, path, slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {
			fired <- struct{}{}
		})
	}()
	time.Sleep(150 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Fatal("callback fired for unrelated file")
	case <-time.After(600 * time.Millisecond):
	}
}
