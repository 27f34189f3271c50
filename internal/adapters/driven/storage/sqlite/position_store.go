package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// positionStore implements driven.PositionStore.
// Each write is a single atomic upsert, so a concurrent reader always
// sees either the previous or the new record, never a partial one.
type positionStore struct {
	store *Store
}

var _ driven.PositionStore = (*positionStore)(nil)

// Get retrieves the position for a document.
func (s *positionStore) Get(ctx context.Context, documentID string) (*domain.ReadingPosition, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document_id, segment_index, updated_at
		FROM reading_positions WHERE document_id = ?
	`, documentID)

	var pos domain.ReadingPosition
	if err := row.Scan(&pos.DocumentID, &pos.SegmentIndex, &pos.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("scanning position", err)
	}

	return &pos, nil
}

// Set overwrites the stored position.
func (s *positionStore) Set(ctx context.Context, documentID string, index int) error {
	if documentID == "" || index < 0 {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO reading_positions (document_id, segment_index, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			segment_index = excluded.segment_index,
			updated_at = excluded.updated_at
	`, documentID, index, time.Now().UTC())

	if err != nil {
		return storageErr("saving position", err)
	}
	return nil
}

// Reset clears the position back to segment 0.
func (s *positionStore) Reset(ctx context.Context, documentID string) error {
	return s.Set(ctx, documentID, 0)
}

// Delete removes the stored position entirely.
func (s *positionStore) Delete(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM reading_positions WHERE document_id = ?", documentID)
	if err != nil {
		return storageErr("deleting position", err)
	}
	return nil
}
