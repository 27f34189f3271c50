// Package memory provides in-memory storage implementations.
// Used in tests and as a degraded fallback when the SQLite store is
// unavailable; contents do not survive process exit.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// LibraryStore is an in-memory implementation of driven.LibraryStore.
type LibraryStore struct {
	mu       sync.RWMutex
	docs     map[string]domain.Document
	segments map[string][]domain.Segment
}

var _ driven.LibraryStore = (*LibraryStore)(nil)

// NewLibraryStore creates an empty in-memory library store.
func NewLibraryStore() *LibraryStore {
	return &LibraryStore{
		docs:     make(map[string]domain.Document),
		segments: make(map[string][]domain.Segment),
	}
}

// SaveIngest stores a document and its segments under the write lock,
// so the pair is replaced atomically.
func (s *LibraryStore) SaveIngest(_ context.Context, doc *domain.Document, segments []domain.Segment) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *doc
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	stored.SegmentCount = len(segments)

	s.docs[doc.ID] = stored
	s.segments[doc.ID] = append([]domain.Segment(nil), segments...)
	return nil
}

// GetDocument retrieves a document by ID.
func (s *LibraryStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents, most recently ingested first.
func (s *LibraryStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// DeleteDocument removes a document and its segments.
func (s *LibraryStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	delete(s.segments, id)
	return nil
}

// GetSegments retrieves all segments for a document in index order.
func (s *LibraryStore) GetSegments(_ context.Context, documentID string) ([]domain.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Segment(nil), s.segments[documentID]...), nil
}

// GetSegmentRange retrieves segments with from <= index <= to.
func (s *LibraryStore) GetSegmentRange(_ context.Context, documentID string, from, to int) ([]domain.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Segment
	for _, seg := range s.segments[documentID] {
		if seg.Index >= from && seg.Index <= to {
			out = append(out, seg)
		}
	}
	return out, nil
}

// CountSegments returns the segment count for a document.
func (s *LibraryStore) CountSegments(_ context.Context, documentID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.segments[documentID]), nil
}
