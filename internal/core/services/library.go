package services

import (
	"context"
	"errors"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
	"github.com/readerelf/readerelf/internal/core/ports/driving"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService exposes the stored documents to a host UI or CLI.
type LibraryService struct {
	library   driven.LibraryStore
	positions driven.PositionStore
}

// NewLibraryService creates a library service.
func NewLibraryService(library driven.LibraryStore, positions driven.PositionStore) *LibraryService {
	return &LibraryService{
		library:   library,
		positions: positions,
	}
}

// List returns metadata for all documents in the library.
func (s *LibraryService) List(ctx context.Context) ([]domain.Document, error) {
	return s.library.ListDocuments(ctx)
}

// Get retrieves one document's metadata, including its outline.
func (s *LibraryService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.library.GetDocument(ctx, documentID)
}

// Segments returns a document's full segment sequence.
func (s *LibraryService) Segments(ctx context.Context, documentID string) ([]domain.Segment, error) {
	if _, err := s.library.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.library.GetSegments(ctx, documentID)
}

// Remove deletes a document along with its segments and position.
func (s *LibraryService) Remove(ctx context.Context, documentID string) error {
	if err := s.library.DeleteDocument(ctx, documentID); err != nil {
		return err
	}

	// Not all library stores share a backend with the position store.
	if err := s.positions.Delete(ctx, documentID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
