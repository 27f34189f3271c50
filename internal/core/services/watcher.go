package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/readerelf/readerelf/internal/core/ports/driving"
	"github.com/readerelf/readerelf/internal/logger"
)

// settleDelay is how long a file must stay quiet after its last write
// event before it is ingested. Copies into the watched directory arrive
// as bursts of writes.
const settleDelay = time.Second

// LibraryWatcher ingests files dropped into a watched directory.
type LibraryWatcher struct {
	ingestor driving.Ingestor
	accept   func(path string) bool
}

// NewLibraryWatcher creates a watcher. The accept filter decides which
// paths are worth ingesting (typically by recognised extension).
func NewLibraryWatcher(ingestor driving.Ingestor, accept func(path string) bool) *LibraryWatcher {
	return &LibraryWatcher{
		ingestor: ingestor,
		accept:   accept,
	}
}

// Watch blocks watching dir until the context is cancelled. Files are
// ingested once they have settled; ingest failures are logged and do
// not stop the watch.
func (w *LibraryWatcher) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("watching %s", dir)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.accept(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < settleDelay {
					continue
				}
				delete(pending, path)

				doc, err := w.ingestor.IngestFile(ctx, path)
				if err != nil {
					logger.Warn("auto-ingest of %s failed: %v", path, err)
					continue
				}
				logger.Info("auto-ingested %s as %s", path, doc.ID)
			}
		}
	}
}
