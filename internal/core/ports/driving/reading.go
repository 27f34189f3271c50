package driving

import (
	"context"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// ReadingService manages the reading cursor and the views handed to the
// external TTS and LLM collaborators.
type ReadingService interface {
	// Position returns the stored cursor for a document.
	// Returns domain.ErrNotFound when none exists (or when the
	// document's content changed, since that yields a new identifier).
	Position(ctx context.Context, documentID string) (*domain.ReadingPosition, error)

	// MarkPosition records the segment to resume from. Fails with
	// domain.ErrInvalidPosition when index is outside the document's
	// segment range.
	MarkPosition(ctx context.Context, documentID string, index int) error

	// ResetPosition clears the cursor back to segment 0.
	ResetPosition(ctx context.Context, documentID string) error

	// Context returns the segments surrounding index (at most radius
	// on each side), for "define/summarize/explain" style queries.
	Context(ctx context.Context, documentID string, index, radius int) ([]domain.Segment, error)

	// SpeechFeed returns the ordered speakable items for a document,
	// with heading prosody hints interleaved from the outline. When
	// resume is true the feed starts at the stored position.
	SpeechFeed(ctx context.Context, documentID string, resume bool) ([]domain.SpeakableItem, error)
}
