package settings

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever the settings file changes on disk, until
// ctx is cancelled. Uses fsnotify with a polling fallback.
func (s *Store) Watch(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("settings watcher unavailable, falling back to polling", "error", err)
		s.watchPolling(ctx)
		return
	}
	defer watcher.Close()

	// Watch the directory (more reliable than watching the file directly,
	// and survives the temp-file rename Save performs).
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		slog.Warn("failed to watch settings directory, falling back to polling",
			"dir", dir, "error", err)
		s.watchPolling(ctx)
		return
	}

	baseName := filepath.Base(s.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.reload(); err != nil {
				slog.Warn("failed to reload settings", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Usually recoverable
			slog.Debug("settings watcher error", "error", err)
		}
	}
}

// watchPolling reloads the settings file on a fixed interval.
func (s *Store) watchPolling(ctx context.Context) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.reload(); err != nil {
				slog.Warn("failed to reload settings", "error", err)
			}
		}
	}
}
