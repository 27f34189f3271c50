package driven

import (
	"context"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// SegmentProcessor is one stage of the segmentation pipeline.
// The first stage receives nil segments and creates them; later stages
// receive and may reshape them. Processing must be deterministic:
// identical normalized text always yields identical segments.
type SegmentProcessor interface {
	// Name returns the processor name used in configuration.
	Name() string

	// Process derives segments from normalized text.
	Process(ctx context.Context, norm *domain.NormalizedText, segments []domain.Segment) ([]domain.Segment, error)
}

// SegmenterPipeline chains SegmentProcessors in order.
type SegmenterPipeline interface {
	// Process runs the normalized text through all stages and returns
	// the final segment sequence, indices 0-based and strictly
	// increasing.
	Process(ctx context.Context, norm *domain.NormalizedText) ([]domain.Segment, error)
}
