package driving

import (
	"context"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// LibraryService exposes the known documents for a host UI/CLI to render
// a file-select list. This core supplies the data, not the rendering.
type LibraryService interface {
	// List returns metadata for all documents in the library.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves one document's metadata, including its outline.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Segments returns a document's full segment sequence.
	Segments(ctx context.Context, documentID string) ([]domain.Segment, error)

	// Remove deletes a document from the library along with its
	// segments and reading position.
	Remove(ctx context.Context, documentID string) error
}
