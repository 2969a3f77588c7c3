// Package domain defines the business logic for the eco activity tracker.
package domain

import (
	"context"
	"time"

	"github.com/akhillingutla-us/EcoTracker/internal/observability"
)

// RecordStore captures persistence operations over the two append-only
// collections. Load returns an empty slice when nothing is persisted yet,
// or when the persisted payload is unreadable (availability of new logging
// is preferred over unreadable history). ClearAll empties both collections;
// a reader must never observe one collection cleared and the other not.
type RecordStore interface {
	LoadActivities(ctx context.Context) ([]ActivityRecord, error)
	AppendActivity(ctx context.Context, record ActivityRecord) error
	LoadPhotos(ctx context.Context) ([]PhotoRecord, error)
	AppendPhoto(ctx context.Context, record PhotoRecord) error
	ClearAll(ctx context.Context) error
}

// Service orchestrates recording, analytics and export over a RecordStore.
// It owns no record state of its own; every read goes back to the store.
type Service struct {
	store RecordStore
	table CategoryTable
	now   func() time.Time
}

// NewService constructs a Service around a store and category table.
func NewService(store RecordStore, table CategoryTable) *Service {
	return &Service{store: store, table: table, now: time.Now}
}

// Stats loads the full activity collection and reduces it to a fresh
// Snapshot. Nothing is cached; recomputation is cheap enough to run on
// every observation.
func (s *Service) Stats(ctx context.Context) (Snapshot, error) {
	activities, err := s.store.LoadActivities(ctx)
	if err != nil {
		observability.RecordStoreFailure("load")
		return Snapshot{}, err
	}
	snapshot := ComputeSnapshot(activities, s.table, s.now())
	observability.RecordSnapshotComputed()
	return snapshot, nil
}

// Export assembles the read-only summary of both collections plus current
// stats. The location tag is consumed as a display string only.
func (s *Service) Export(ctx context.Context, locationTag string) (ExportSummary, error) {
	activities, err := s.store.LoadActivities(ctx)
	if err != nil {
		observability.RecordStoreFailure("load")
		return ExportSummary{}, err
	}
	photos, err := s.store.LoadPhotos(ctx)
	if err != nil {
		observability.RecordStoreFailure("load")
		return ExportSummary{}, err
	}
	now := s.now()
	snapshot := ComputeSnapshot(activities, s.table, now)
	return BuildExportSummary(activities, photos, snapshot, locationTag, now), nil
}

// ResetAll clears both collections. On failure existing data remains
// intact; on success the store stays usable for subsequent appends.
func (s *Service) ResetAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		observability.RecordStoreFailure("clear")
		return err
	}
	return nil
}
