// Package watch keeps a workspace fresh: it regenerates the build graph when
// manifests change, optionally rebuilds, and can publish run outcomes and
// serve metrics while running.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/buildforge/internal/logfields"
	"git.home.luguber.info/inful/buildforge/internal/manifest"
	"github.com/fsnotify/fsnotify"
)

// Watcher monitors manifest changes under a root path and triggers the
// configured action after a debounce window.
type Watcher struct {
	rootPath     string
	watcher      *fsnotify.Watcher
	action       func(ctx context.Context)
	debounceTime time.Duration
	changeChan   chan struct{}
}

// NewWatcher creates a manifest watcher. The action runs after each settled
// burst of manifest changes, never concurrently with itself.
func NewWatcher(rootPath string, action func(ctx context.Context)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	return &Watcher{
		rootPath:     absRoot,
		watcher:      fsw,
		action:       action,
		debounceTime: 2 * time.Second, // settle rapid editor save bursts
		changeChan:   make(chan struct{}, 1),
	}, nil
}

// Start watches the root and every workspace project directory, then blocks
// dispatching debounced actions until the context ends.
func (w *Watcher) Start(ctx context.Context) error {
	// Watching directories is more reliable than watching files directly.
	dirs := []string{w.rootPath}
	if ws, err := manifest.LoadWorkspace(w.rootPath); err == nil {
		for _, p := range ws.Projects {
			dirs = append(dirs, filepath.Join(w.rootPath, p))
		}
	} else {
		slog.Warn("Workspace manifest unreadable, watching root only", logfields.Error(err))
	}
	for _, d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}
	slog.Info("Watching for manifest changes", logfields.Root(w.rootPath), slog.Int("dirs", len(dirs)))

	go w.collect(ctx)
	w.dispatch(ctx)
	return nil
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// collect funnels relevant fsnotify events into the change channel.
func (w *Watcher) collect(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isManifestEvent(event) {
				continue
			}
			slog.Debug("Manifest change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			select {
			case w.changeChan <- struct{}{}:
			default: // a change is already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// dispatch runs the action after the debounce window following a change.
func (w *Watcher) dispatch(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.changeChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounceTime)
			fire = timer.C
		case <-fire:
			fire = nil
			w.action(ctx)
		}
	}
}

// isManifestEvent filters for writes/creates/removes of manifest files.
func isManifestEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	return base == manifest.WorkspaceFileName ||
		base == manifest.ProjectFileName ||
		strings.HasSuffix(base, ".yaml")
}
