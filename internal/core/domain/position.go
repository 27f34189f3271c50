package domain

import "time"

// ReadingPosition is the per-document reading cursor. At most one record
// exists per document identifier; the latest write wins.
type ReadingPosition struct {
	// DocumentID links to the Document being read.
	DocumentID string

	// SegmentIndex is the index of the segment to resume from.
	SegmentIndex int

	// UpdatedAt is when the position was last written.
	UpdatedAt time.Time
}
