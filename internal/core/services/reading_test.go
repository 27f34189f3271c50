package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readerelf/readerelf/internal/adapters/driven/storage/memory"
	"github.com/readerelf/readerelf/internal/core/domain"
)

// brokenPositionStore fails every durable operation.
type brokenPositionStore struct{}

func (brokenPositionStore) Get(context.Context, string) (*domain.ReadingPosition, error) {
	return nil, domain.ErrStorageFailure
}

func (brokenPositionStore) Set(context.Context, string, int) error {
	return domain.ErrStorageFailure
}

func (brokenPositionStore) Reset(context.Context, string) error {
	return domain.ErrStorageFailure
}

func (brokenPositionStore) Delete(context.Context, string) error {
	return domain.ErrStorageFailure
}

// seedLibrary stores a document with n segments and returns its ID.
func seedLibrary(t *testing.T, library *memory.LibraryStore, n int, outline ...domain.OutlineEntry) string {
	t.Helper()

	doc := &domain.Document{
		ID:      "doc-1",
		Title:   "Seeded",
		Format:  domain.FormatPlainText,
		Outline: outline,
	}
	segments := make([]domain.Segment, n)
	for i := range segments {
		segments[i] = domain.Segment{
			DocumentID: doc.ID,
			Index:      i,
			Text:       "Paragraph " + string(rune('A'+i)) + ".",
		}
	}
	require.NoError(t, library.SaveIngest(context.Background(), doc, segments))
	return doc.ID
}

func newTestReading(t *testing.T, n int, outline ...domain.OutlineEntry) (*ReadingService, string) {
	t.Helper()

	library := memory.NewLibraryStore()
	id := seedLibrary(t, library, n, outline...)
	svc := NewReadingService(library, memory.NewPositionStore(), memory.NewPositionStore())
	return svc, id
}

func TestReading_MarkAndResume(t *testing.T) {
	svc, id := newTestReading(t, 5)
	ctx := context.Background()

	require.NoError(t, svc.MarkPosition(ctx, id, 3))

	pos, err := svc.Position(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, pos.SegmentIndex)
}

func TestReading_PositionMissing(t *testing.T) {
	svc, id := newTestReading(t, 5)

	_, err := svc.Position(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReading_MarkOutOfRange(t *testing.T) {
	svc, id := newTestReading(t, 5)
	ctx := context.Background()

	assert.ErrorIs(t, svc.MarkPosition(ctx, id, 5), domain.ErrInvalidPosition)
	assert.ErrorIs(t, svc.MarkPosition(ctx, id, -1), domain.ErrInvalidPosition)
}

func TestReading_MarkUnknownDocument(t *testing.T) {
	svc, _ := newTestReading(t, 5)

	err := svc.MarkPosition(context.Background(), "nope", 0)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReading_Reset(t *testing.T) {
	svc, id := newTestReading(t, 5)
	ctx := context.Background()

	require.NoError(t, svc.MarkPosition(ctx, id, 4))
	require.NoError(t, svc.ResetPosition(ctx, id))

	pos, err := svc.Position(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, pos.SegmentIndex)
}

func TestReading_FallbackOnStorageFailure(t *testing.T) {
	library := memory.NewLibraryStore()
	id := seedLibrary(t, library, 5)
	svc := NewReadingService(library, brokenPositionStore{}, memory.NewPositionStore())
	ctx := context.Background()

	// The durable store is down, but the session still keeps its place.
	require.NoError(t, svc.MarkPosition(ctx, id, 2))

	pos, err := svc.Position(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, pos.SegmentIndex)
}

func TestReading_FailureWithoutFallbackPropagates(t *testing.T) {
	library := memory.NewLibraryStore()
	id := seedLibrary(t, library, 5)
	svc := NewReadingService(library, brokenPositionStore{}, nil)

	err := svc.MarkPosition(context.Background(), id, 2)

	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}

func TestReading_ContextWindow(t *testing.T) {
	svc, id := newTestReading(t, 10)
	ctx := context.Background()

	segments, err := svc.Context(ctx, id, 5, 2)
	require.NoError(t, err)
	require.Len(t, segments, 5)
	assert.Equal(t, 3, segments[0].Index)
	assert.Equal(t, 7, segments[4].Index)
}

func TestReading_ContextClampedAtEdges(t *testing.T) {
	svc, id := newTestReading(t, 4)
	ctx := context.Background()

	head, err := svc.Context(ctx, id, 0, 2)
	require.NoError(t, err)
	require.Len(t, head, 3)
	assert.Equal(t, 0, head[0].Index)

	tail, err := svc.Context(ctx, id, 3, 2)
	require.NoError(t, err)
	require.Len(t, tail, 3)
	assert.Equal(t, 3, tail[2].Index)
}

func TestReading_ContextInvalidIndex(t *testing.T) {
	svc, id := newTestReading(t, 4)

	_, err := svc.Context(context.Background(), id, 4, 1)

	assert.ErrorIs(t, err, domain.ErrInvalidPosition)
}

func TestReading_SpeechFeedInterleavesHeadings(t *testing.T) {
	svc, id := newTestReading(t, 4,
		domain.OutlineEntry{Title: "One", Level: 1, SegmentStart: 0},
		domain.OutlineEntry{Title: "Two", Level: 1, SegmentStart: 2},
	)

	feed, err := svc.SpeechFeed(context.Background(), id, false)
	require.NoError(t, err)
	require.Len(t, feed, 6)

	assert.Equal(t, domain.ProsodyHeading, feed[0].Prosody)
	assert.Equal(t, "One", feed[0].Text)
	assert.Equal(t, -1, feed[0].SegmentIndex)

	assert.Equal(t, domain.ProsodyParagraph, feed[1].Prosody)
	assert.Equal(t, 0, feed[1].SegmentIndex)

	assert.Equal(t, domain.ProsodyHeading, feed[3].Prosody)
	assert.Equal(t, "Two", feed[3].Text)
	assert.Equal(t, 2, feed[4].SegmentIndex)
}

func TestReading_SpeechFeedResumes(t *testing.T) {
	svc, id := newTestReading(t, 4,
		domain.OutlineEntry{Title: "One", Level: 1, SegmentStart: 0},
		domain.OutlineEntry{Title: "Two", Level: 1, SegmentStart: 2},
	)
	ctx := context.Background()

	require.NoError(t, svc.MarkPosition(ctx, id, 2))

	feed, err := svc.SpeechFeed(ctx, id, true)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	// Resuming at a chapter start announces that chapter, not earlier ones.
	assert.Equal(t, "Two", feed[0].Text)
	assert.Equal(t, domain.ProsodyHeading, feed[0].Prosody)
	assert.Equal(t, 2, feed[1].SegmentIndex)
	assert.Equal(t, 3, feed[2].SegmentIndex)
}

func TestReading_SpeechFeedNoResumeRecord(t *testing.T) {
	svc, id := newTestReading(t, 2)

	feed, err := svc.SpeechFeed(context.Background(), id, true)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestLibraryService_RemoveClearsPosition(t *testing.T) {
	library := memory.NewLibraryStore()
	positions := memory.NewPositionStore()
	id := seedLibrary(t, library, 3)

	reading := NewReadingService(library, positions, nil)
	libSvc := NewLibraryService(library, positions)
	ctx := context.Background()

	require.NoError(t, reading.MarkPosition(ctx, id, 1))
	require.NoError(t, libSvc.Remove(ctx, id))

	_, err := libSvc.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = positions.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_SegmentsUnknownDocument(t *testing.T) {
	libSvc := NewLibraryService(memory.NewLibraryStore(), memory.NewPositionStore())

	_, err := libSvc.Segments(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
