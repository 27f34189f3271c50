package driven

import (
	"context"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// LibraryStore persists documents and their segments.
type LibraryStore interface {
	// SaveIngest stores a document together with its segments as one
	// atomic unit. Either everything is written or nothing is; no
	// partial segment set is ever observable.
	SaveIngest(ctx context.Context, doc *domain.Document, segments []domain.Segment) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents in the library.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document, its segments and its reading
	// position.
	DeleteDocument(ctx context.Context, id string) error

	// GetSegments retrieves all segments for a document in index order.
	GetSegments(ctx context.Context, documentID string) ([]domain.Segment, error)

	// GetSegmentRange retrieves segments with from <= index <= to.
	GetSegmentRange(ctx context.Context, documentID string, from, to int) ([]domain.Segment, error)

	// CountSegments returns the segment count for a document.
	CountSegments(ctx context.Context, documentID string) (int, error)
}
