package memory

import (
	"context"
	"sync"
	"time"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// PositionStore is an in-memory implementation of driven.PositionStore.
// A single mutex serializes all writes, which satisfies the store's
// read-modify-write contract.
type PositionStore struct {
	mu        sync.RWMutex
	positions map[string]domain.ReadingPosition
}

var _ driven.PositionStore = (*PositionStore)(nil)

// NewPositionStore creates an empty in-memory position store.
func NewPositionStore() *PositionStore {
	return &PositionStore{
		positions: make(map[string]domain.ReadingPosition),
	}
}

// Get retrieves the position for a document.
func (s *PositionStore) Get(_ context.Context, documentID string) (*domain.ReadingPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.positions[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pos, nil
}

// Set overwrites the stored position.
func (s *PositionStore) Set(_ context.Context, documentID string, index int) error {
	if documentID == "" || index < 0 {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions[documentID] = domain.ReadingPosition{
		DocumentID:   documentID,
		SegmentIndex: index,
		UpdatedAt:    time.Now().UTC(),
	}
	return nil
}

// Reset clears the position back to segment 0.
func (s *PositionStore) Reset(ctx context.Context, documentID string) error {
	return s.Set(ctx, documentID, 0)
}

// Delete removes the stored position entirely.
func (s *PositionStore) Delete(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.positions, documentID)
	return nil
}
