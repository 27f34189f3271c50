package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// libraryStore implements driven.LibraryStore.
type libraryStore struct {
	store *Store
}

var _ driven.LibraryStore = (*libraryStore)(nil)

// SaveIngest stores a document together with its segments in one
// transaction. Re-ingesting replaces the previous segment set entirely.
func (s *libraryStore) SaveIngest(ctx context.Context, doc *domain.Document, segments []domain.Segment) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	outlineJSON, err := json.Marshal(doc.Outline)
	if err != nil {
		return fmt.Errorf("marshalling outline: %w", err)
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	doc.SegmentCount = len(segments)

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, uri, title, format, content_hash, outline, segment_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			uri = excluded.uri,
			title = excluded.title,
			format = excluded.format,
			content_hash = excluded.content_hash,
			outline = excluded.outline,
			segment_count = excluded.segment_count,
			updated_at = excluded.updated_at
	`, doc.ID, doc.URI, doc.Title, doc.Format, doc.ContentHash,
		string(outlineJSON), doc.SegmentCount, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return storageErr("saving document", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM segments WHERE document_id = ?", doc.ID); err != nil {
		return storageErr("clearing segments", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO segments (document_id, idx, text, section)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return storageErr("preparing statement", err)
	}
	defer stmt.Close()

	for _, seg := range segments {
		if _, err := stmt.ExecContext(ctx, doc.ID, seg.Index, seg.Text, seg.Section); err != nil {
			return storageErr("saving segment", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing transaction", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *libraryStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, uri, title, format, content_hash, outline, segment_count, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// ListDocuments returns all documents, most recently ingested first.
func (s *libraryStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, uri, title, format, content_hash, outline, segment_count, created_at, updated_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, storageErr("querying documents", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating documents", err)
	}

	return docs, nil
}

// DeleteDocument removes a document, its segments and its position.
func (s *libraryStore) DeleteDocument(ctx context.Context, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return storageErr("deleting document", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("checking delete result", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	// Segments cascade; the position table is independent.
	if _, err := tx.ExecContext(ctx, "DELETE FROM reading_positions WHERE document_id = ?", id); err != nil {
		return storageErr("deleting position", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing transaction", err)
	}
	return nil
}

// GetSegments retrieves all segments for a document in index order.
func (s *libraryStore) GetSegments(ctx context.Context, documentID string) ([]domain.Segment, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT document_id, idx, text, section
		FROM segments WHERE document_id = ?
		ORDER BY idx
	`, documentID)
	if err != nil {
		return nil, storageErr("querying segments", err)
	}
	defer rows.Close()

	return scanSegments(rows)
}

// GetSegmentRange retrieves segments with from <= index <= to.
func (s *libraryStore) GetSegmentRange(ctx context.Context, documentID string, from, to int) ([]domain.Segment, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT document_id, idx, text, section
		FROM segments WHERE document_id = ? AND idx BETWEEN ? AND ?
		ORDER BY idx
	`, documentID, from, to)
	if err != nil {
		return nil, storageErr("querying segment range", err)
	}
	defer rows.Close()

	return scanSegments(rows)
}

// CountSegments returns the segment count for a document.
func (s *libraryStore) CountSegments(ctx context.Context, documentID string) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM segments WHERE document_id = ?", documentID).Scan(&count)
	if err != nil {
		return 0, storageErr("counting segments", err)
	}
	return count, nil
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var outlineJSON string

	if err := row.Scan(&doc.ID, &doc.URI, &doc.Title, &doc.Format, &doc.ContentHash,
		&outlineJSON, &doc.SegmentCount, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("scanning document", err)
	}

	if err := unmarshalOutline(outlineJSON, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var outlineJSON string

	if err := rows.Scan(&doc.ID, &doc.URI, &doc.Title, &doc.Format, &doc.ContentHash,
		&outlineJSON, &doc.SegmentCount, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, storageErr("scanning document", err)
	}

	if err := unmarshalOutline(outlineJSON, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func unmarshalOutline(outlineJSON string, doc *domain.Document) error {
	if outlineJSON == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(outlineJSON), &doc.Outline); err != nil {
		return fmt.Errorf("unmarshaling outline: %w", err)
	}
	return nil
}

// scanSegments scans multiple segment rows.
func scanSegments(rows *sql.Rows) ([]domain.Segment, error) {
	var segments []domain.Segment //nolint:prealloc // size unknown from query
	for rows.Next() {
		var seg domain.Segment
		if err := rows.Scan(&seg.DocumentID, &seg.Index, &seg.Text, &seg.Section); err != nil {
			return nil, storageErr("scanning segment", err)
		}
		segments = append(segments, seg)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating segments", err)
	}

	return segments, nil
}
