package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readerelf/readerelf/internal/adapters/driven/storage/memory"
	"github.com/readerelf/readerelf/internal/decoders"
	"github.com/readerelf/readerelf/internal/normalizer"
	"github.com/readerelf/readerelf/internal/segmenter"
	"github.com/readerelf/readerelf/internal/segmenter/paragraph"
)

func TestWatcher_IngestsDroppedFile(t *testing.T) {
	registry := decoders.NewRegistry()
	decoders.RegisterDefaults(registry)

	library := memory.NewLibraryStore()
	ingest := NewIngestService(
		registry,
		normalizer.New(),
		segmenter.NewPipeline(paragraph.New()),
		library,
	)

	dir := t.TempDir()
	watcher := NewLibraryWatcher(ingest, registry.KnownExtension)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, dir)
	}()

	// Give the watcher a moment to register before dropping the file.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "dropped.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dropped into the watch folder."), 0600))

	require.Eventually(t, func() bool {
		docs, err := library.ListDocuments(context.Background())
		return err == nil && len(docs) == 1
	}, 10*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_IgnoresForeignExtensions(t *testing.T) {
	registry := decoders.NewRegistry()
	decoders.RegisterDefaults(registry)

	library := memory.NewLibraryStore()
	ingest := NewIngestService(
		registry,
		normalizer.New(),
		segmenter.NewPipeline(paragraph.New()),
		library,
	)

	dir := t.TempDir()
	watcher := NewLibraryWatcher(ingest, registry.KnownExtension)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, dir)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noise.tmp"), []byte("not a book"), 0600))

	// Long enough for the settle window to have fired if it was going to.
	time.Sleep(2 * time.Second)

	docs, err := library.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Empty(t, docs)

	cancel()
	require.NoError(t, <-done)
}
