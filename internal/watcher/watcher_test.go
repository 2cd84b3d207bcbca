package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/triptych/internal/watcher"
)

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	w, err := watcher.New(50 * time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	w.SetDir(dir)

	// Rapid writes should coalesce into a single notification.
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("v%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-w.Events():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-w.Events():
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresLockFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := watcher.New(20 * time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	require.NoError(t, w.Add(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.lock"), []byte("x"), 0o644))

	select {
	case <-w.Events():
		t.Fatal("should not notify for lock files")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index"), []byte("x"), 0o644))

	select {
	case <-w.Events():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for index write")
	}
}

func TestWatcher_SetDirMovesWatch(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	w, err := watcher.New(20 * time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	w.SetDir(first)
	w.SetDir(second)

	require.NoError(t, os.WriteFile(filepath.Join(first, "stale.txt"), []byte("x"), 0o644))

	select {
	case <-w.Events():
		t.Fatal("should not notify for the previous directory")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(filepath.Join(second, "fresh.txt"), []byte("x"), 0o644))

	select {
	case <-w.Events():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for the current directory")
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := watcher.New(20 * time.Millisecond)
	require.NoError(t, err)
	w.SetDir(t.TempDir())

	done := make(chan struct{})
	go func() {
		require.NoError(t, w.Close())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close timed out")
	}
}
