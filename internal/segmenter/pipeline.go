// Package segmenter turns normalized text into an ordered sequence of
// addressable reading segments.
package segmenter

import (
	"context"
	"fmt"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// Pipeline chains multiple SegmentProcessors and runs them in order.
// It implements the SegmenterPipeline interface.
type Pipeline struct {
	processors []driven.SegmentProcessor
}

// NewPipeline creates a new segmentation pipeline with the given
// processors. Processors are executed in the order provided.
func NewPipeline(processors ...driven.SegmentProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the normalized text through all processors in order.
// The first processor receives nil segments and should create them.
// Subsequent processors receive and may reshape the segments.
// Indices are renumbered after the final stage so they are always
// 0-based and strictly increasing.
func (p *Pipeline) Process(ctx context.Context, norm *domain.NormalizedText) ([]domain.Segment, error) {
	if norm == nil {
		return nil, fmt.Errorf("normalized text is nil")
	}

	var segments []domain.Segment

	for _, processor := range p.processors {
		var err error
		segments, err = processor.Process(ctx, norm, segments)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	for i := range segments {
		segments[i].DocumentID = norm.DocumentID
		segments[i].Index = i
	}

	return segments, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.SegmentProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
