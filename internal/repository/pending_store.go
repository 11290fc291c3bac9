package repository

import (
	"context"
	"sync"

	"student_intake/internal/model"
)

// PendingStore buffers submissions until the export job drains them
type PendingStore interface {
	Append(ctx context.Context, sub model.PendingSubmission) error
	// Drain returns every buffered submission in append order and empties the store
	Drain(ctx context.Context) ([]model.PendingSubmission, error)
	Healthy(ctx context.Context) bool
}

// MemoryPendingStore keeps submissions in process memory
type MemoryPendingStore struct {
	mu      sync.Mutex
	pending []model.PendingSubmission
}

// NewMemoryPendingStore creates an empty in-memory store
func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{}
}

// Append adds sub to the tail of the queue
func (s *MemoryPendingStore) Append(_ context.Context, sub model.PendingSubmission) error {
	s.mu.Lock()
	s.pending = append(s.pending, sub)
	s.mu.Unlock()
	return nil
}

// Drain swaps the queue for an empty one
func (s *MemoryPendingStore) Drain(_ context.Context) ([]model.PendingSubmission, error) {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if batch == nil {
		batch = []model.PendingSubmission{}
	}
	return batch, nil
}

// Len returns the number of buffered submissions
func (s *MemoryPendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Healthy always reports true for the in-memory store
func (s *MemoryPendingStore) Healthy(context.Context) bool {
	return true
}
