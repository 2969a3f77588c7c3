package store

import (
	"context"
	"sync"

	"github.com/akhillingutla-us/EcoTracker/internal/domain"
)

// MemoryStore keeps both collections in process memory. It backs tests and
// ephemeral runs; loads hand out copies so callers can never mutate what
// the store owns.
type MemoryStore struct {
	mu         sync.RWMutex
	activities []domain.ActivityRecord
	photos     []domain.PhotoRecord
}

// NewMemory constructs an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// LoadActivities returns a copy of the activity collection.
func (m *MemoryStore) LoadActivities(ctx context.Context) ([]domain.ActivityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.ActivityRecord{}, m.activities...), nil
}

// AppendActivity adds one record to the activity collection.
func (m *MemoryStore) AppendActivity(ctx context.Context, record domain.ActivityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, record)
	return nil
}

// LoadPhotos returns a copy of the photo collection.
func (m *MemoryStore) LoadPhotos(ctx context.Context) ([]domain.PhotoRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.PhotoRecord{}, m.photos...), nil
}

// AppendPhoto adds one record to the photo collection.
func (m *MemoryStore) AppendPhoto(ctx context.Context, record domain.PhotoRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos = append(m.photos, record)
	return nil
}

// ClearAll drops both collections in one step.
func (m *MemoryStore) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = nil
	m.photos = nil
	return nil
}
