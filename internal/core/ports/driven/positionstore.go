package driven

import (
	"context"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// PositionStore persists the per-document reading cursor.
//
// Writes must be transactional: a concurrent reader never observes a
// partial record. Read-modify-write for one document identifier must be
// serialized; writes for different documents are independent.
type PositionStore interface {
	// Get retrieves the position for a document.
	// Returns domain.ErrNotFound when no position has been stored.
	Get(ctx context.Context, documentID string) (*domain.ReadingPosition, error)

	// Set overwrites the stored position. Range validation is the
	// caller's job; the store accepts any non-negative index.
	Set(ctx context.Context, documentID string, index int) error

	// Reset clears the position back to segment 0.
	Reset(ctx context.Context, documentID string) error

	// Delete removes the stored position entirely.
	Delete(ctx context.Context, documentID string) error
}
