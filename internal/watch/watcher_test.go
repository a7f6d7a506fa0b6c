package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsManifestEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"project manifest write", fsnotify.Event{Name: "/r/app/project.yaml", Op: fsnotify.Write}, true},
		{"workspace manifest create", fsnotify.Event{Name: "/r/workspace.yaml", Op: fsnotify.Create}, true},
		{"config change counts as yaml", fsnotify.Event{Name: "/r/buildforge.yaml", Op: fsnotify.Write}, true},
		{"chmod only ignored", fsnotify.Event{Name: "/r/project.yaml", Op: fsnotify.Chmod}, false},
		{"unrelated file ignored", fsnotify.Event{Name: "/r/app/main.c", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isManifestEvent(tt.event))
		})
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "workspace.yaml"), []byte("name: W\nprojects: [p]\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "p"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "p", "project.yaml"), []byte("name: p\ntargets: [{name: t, product: library}]\n"), 0o644))

	var fired atomic.Int32
	w, err := NewWatcher(root, func(context.Context) { fired.Add(1) })
	require.NoError(t, err)
	defer w.Close()
	w.debounceTime = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	// Give the watcher a moment to register its directories.
	time.Sleep(100 * time.Millisecond)

	// A burst of writes should collapse into one action.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "p", "project.yaml"),
			[]byte("name: p\ntargets: [{name: t, product: library}]\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		2*time.Second, 20*time.Millisecond, "burst should fire exactly once")

	cancel()
	<-done
}
