package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
	"github.com/readerelf/readerelf/internal/core/ports/driving"
	"github.com/readerelf/readerelf/internal/logger"
)

// DefaultContextRadius is the number of segments returned on each side
// of the focus segment when the caller does not pick a radius.
const DefaultContextRadius = 2

// Position writes are retried this many times before falling back to
// the in-memory store.
const positionWriteAttempts = 3

const positionRetryDelay = 50 * time.Millisecond

// Ensure ReadingService implements the interface.
var _ driving.ReadingService = (*ReadingService)(nil)

// ReadingService manages the reading cursor and produces the views
// handed to the TTS and LLM collaborators.
//
// When the durable position store keeps failing, writes land in the
// fallback store so the session cursor survives within the process; the
// user is warned that it will not survive a restart.
type ReadingService struct {
	library   driven.LibraryStore
	positions driven.PositionStore
	fallback  driven.PositionStore
}

// NewReadingService creates a reading service. The fallback store may be
// nil, in which case durable write failures are returned to the caller.
func NewReadingService(library driven.LibraryStore, positions, fallback driven.PositionStore) *ReadingService {
	return &ReadingService{
		library:   library,
		positions: positions,
		fallback:  fallback,
	}
}

// Position returns the stored cursor for a document. A fallback entry
// from an earlier failed durable write wins over the durable record,
// since it is newer.
func (s *ReadingService) Position(ctx context.Context, documentID string) (*domain.ReadingPosition, error) {
	if s.fallback != nil {
		if pos, err := s.fallback.Get(ctx, documentID); err == nil {
			return pos, nil
		}
	}
	return s.positions.Get(ctx, documentID)
}

// MarkPosition records the segment to resume from.
func (s *ReadingService) MarkPosition(ctx context.Context, documentID string, index int) error {
	doc, err := s.library.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if index < 0 || index >= doc.SegmentCount {
		return fmt.Errorf("%w: index %d outside [0, %d)", domain.ErrInvalidPosition, index, doc.SegmentCount)
	}

	return s.writePosition(ctx, documentID, index)
}

// ResetPosition clears the cursor back to segment 0.
func (s *ReadingService) ResetPosition(ctx context.Context, documentID string) error {
	if _, err := s.library.GetDocument(ctx, documentID); err != nil {
		return err
	}
	return s.writePosition(ctx, documentID, 0)
}

// writePosition writes through the durable store with retries, falling
// back to the in-memory store when it keeps failing.
func (s *ReadingService) writePosition(ctx context.Context, documentID string, index int) error {
	var err error
	for attempt := 0; attempt < positionWriteAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(positionRetryDelay):
			}
		}

		err = s.positions.Set(ctx, documentID, index)
		if err == nil {
			// Durable write succeeded; any stale fallback entry would
			// otherwise shadow future reads.
			if s.fallback != nil {
				_ = s.fallback.Delete(ctx, documentID)
			}
			return nil
		}
		if !errors.Is(err, domain.ErrStorageFailure) {
			return err
		}
	}

	if s.fallback == nil {
		return err
	}

	logger.Warn("position store unavailable, keeping position for %s in memory only: %v", documentID, err)
	return s.fallback.Set(ctx, documentID, index)
}

// Context returns the segments surrounding index, at most radius on each
// side. A non-positive radius selects the default.
func (s *ReadingService) Context(ctx context.Context, documentID string, index, radius int) ([]domain.Segment, error) {
	doc, err := s.library.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= doc.SegmentCount {
		return nil, fmt.Errorf("%w: index %d outside [0, %d)", domain.ErrInvalidPosition, index, doc.SegmentCount)
	}
	if radius <= 0 {
		radius = DefaultContextRadius
	}

	from := index - radius
	if from < 0 {
		from = 0
	}
	to := index + radius
	if to > doc.SegmentCount-1 {
		to = doc.SegmentCount - 1
	}

	return s.library.GetSegmentRange(ctx, documentID, from, to)
}

// SpeechFeed returns the ordered speakable items for a document, with
// heading prosody hints interleaved from the outline. When resume is
// true the feed starts at the stored position.
func (s *ReadingService) SpeechFeed(ctx context.Context, documentID string, resume bool) ([]domain.SpeakableItem, error) {
	doc, err := s.library.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	segments, err := s.library.GetSegments(ctx, documentID)
	if err != nil {
		return nil, err
	}

	start := 0
	if resume {
		pos, err := s.Position(ctx, documentID)
		switch {
		case err == nil:
			start = pos.SegmentIndex
		case errors.Is(err, domain.ErrNotFound):
			// Nothing stored, start from the top.
		default:
			return nil, err
		}
		if start > len(segments) {
			start = len(segments)
		}
	}

	var feed []domain.SpeakableItem
	oi := 0
	outline := doc.Outline
	for oi < len(outline) && outline[oi].SegmentStart < start {
		oi++
	}

	for i := start; i < len(segments); i++ {
		for oi < len(outline) && outline[oi].SegmentStart == i {
			feed = append(feed, domain.SpeakableItem{
				Text:         outline[oi].Title,
				Prosody:      domain.ProsodyHeading,
				SegmentIndex: -1,
			})
			oi++
		}
		feed = append(feed, domain.SpeakableItem{
			Text:         segments[i].Text,
			Prosody:      domain.ProsodyParagraph,
			SegmentIndex: segments[i].Index,
		})
	}

	// Trailing headings over empty sections still get announced.
	for oi < len(outline) {
		feed = append(feed, domain.SpeakableItem{
			Text:         outline[oi].Title,
			Prosody:      domain.ProsodyHeading,
			SegmentIndex: -1,
		})
		oi++
	}

	return feed, nil
}
