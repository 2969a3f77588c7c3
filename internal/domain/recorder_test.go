package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	activities []ActivityRecord
	photos     []PhotoRecord
	appendErr  error
	loadErr    error
	clearCalls int
}

func (f *fakeStore) LoadActivities(ctx context.Context) ([]ActivityRecord, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]ActivityRecord{}, f.activities...), nil
}

func (f *fakeStore) AppendActivity(ctx context.Context, record ActivityRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.activities = append(f.activities, record)
	return nil
}

func (f *fakeStore) LoadPhotos(ctx context.Context) ([]PhotoRecord, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]PhotoRecord{}, f.photos...), nil
}

func (f *fakeStore) AppendPhoto(ctx context.Context, record PhotoRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.photos = append(f.photos, record)
	return nil
}

func (f *fakeStore) ClearAll(ctx context.Context) error {
	f.clearCalls++
	f.activities = nil
	f.photos = nil
	return nil
}

func newTestService(store RecordStore) *Service {
	service := NewService(store, DefaultCategoryTable())
	service.now = func() time.Time { return statsNow }
	return service
}

func TestRecordActivityPointComputation(t *testing.T) {
	cases := []struct {
		category string
		duration string
		want     int
	}{
		{"Energy Saving", "10", 30},
		{"Energy Saving", "45", 50}, // duration bonus capped at 30
		{"Transportation", "", 15},  // blank duration counts as zero
		{"Recycling", "abc", 10},    // unparsable duration counts as zero
		{"Recycling", "-5", 10},     // negative duration counts as zero
		{"Water Conservation", "30", 42},
		{"Food Waste Reduction", "7", 15},
		{"Other", "0", 5},
		{"Gardening", "10", 15}, // unknown category scores at the lowest tier
	}

	for _, tc := range cases {
		store := &fakeStore{}
		service := newTestService(store)

		record, err := service.RecordActivity(context.Background(), ActivityInput{
			Description:     "logged",
			Category:        tc.category,
			DurationMinutes: tc.duration,
		})
		if err != nil {
			t.Fatalf("%s/%q: unexpected error %v", tc.category, tc.duration, err)
		}
		if record.Points != tc.want {
			t.Fatalf("%s/%q: expected %d points got %d", tc.category, tc.duration, tc.want, record.Points)
		}
		if len(store.activities) != 1 {
			t.Fatalf("expected one appended record got %d", len(store.activities))
		}
		if store.activities[0].Points != tc.want {
			t.Fatalf("stored record points %d do not match returned %d", store.activities[0].Points, tc.want)
		}
	}
}

func TestRecordActivityValidation(t *testing.T) {
	cases := []struct {
		name      string
		input     ActivityInput
		wantField string
	}{
		{"empty description", ActivityInput{Description: "   ", Category: "Recycling"}, "description"},
		{"missing category", ActivityInput{Description: "composted"}, "category"},
	}

	for _, tc := range cases {
		store := &fakeStore{}
		service := newTestService(store)

		_, err := service.RecordActivity(context.Background(), tc.input)

		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("%s: expected validation error got %v", tc.name, err)
		}
		if validation.Field != tc.wantField {
			t.Fatalf("%s: expected field %q got %q", tc.name, tc.wantField, validation.Field)
		}
		if len(store.activities) != 0 {
			t.Fatalf("%s: store must not be touched on validation failure", tc.name)
		}
	}
}

func TestRecordActivityAppendFailureIsNotValidation(t *testing.T) {
	store := &fakeStore{appendErr: fmt.Errorf("%w: disk gone", ErrStoreUnavailable)}
	service := newTestService(store)

	_, err := service.RecordActivity(context.Background(), ActivityInput{
		Description: "composted",
		Category:    "Recycling",
	})

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable error got %v", err)
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		t.Fatalf("append failure must not look like a validation failure")
	}
}

func TestRecordPhotoDefaultsBlankCaption(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	photos, err := service.RecordPhoto(context.Background(), "file:///photos/1.jpg", "   ")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("expected one photo got %d", len(photos))
	}
	if photos[0].Caption != DefaultPhotoCaption {
		t.Fatalf("expected default caption got %q", photos[0].Caption)
	}
}

func TestRecordPhotoRequiresImageRef(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	_, err := service.RecordPhoto(context.Background(), "  ", "caption")

	var validation *ValidationError
	if !errors.As(err, &validation) || validation.Field != "imageRef" {
		t.Fatalf("expected imageRef validation error got %v", err)
	}
	if len(store.photos) != 0 {
		t.Fatalf("store must not be touched on validation failure")
	}
}

func TestRecordPhotoReturnsNewestFirst(t *testing.T) {
	store := &fakeStore{
		photos: []PhotoRecord{
			{ID: "p1", ImageRef: "ref-1", Caption: "first", CreatedAt: statsNow.Add(-2 * time.Hour)},
			{ID: "p2", ImageRef: "ref-2", Caption: "second", CreatedAt: statsNow.Add(-time.Hour)},
		},
	}
	service := newTestService(store)

	photos, err := service.RecordPhoto(context.Background(), "ref-3", "third")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	got := []string{photos[0].Caption, photos[1].Caption, photos[2].Caption}
	want := []string{"third", "second", "first"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v got %v", want, got)
		}
	}
}

func TestRecordPhotoTimestampTieBreaksToLaterInsert(t *testing.T) {
	store := &fakeStore{
		photos: []PhotoRecord{
			{ID: "p1", ImageRef: "ref-1", Caption: "earlier insert", CreatedAt: statsNow},
		},
	}
	service := newTestService(store)

	// The new photo shares the exact creation timestamp with p1.
	photos, err := service.RecordPhoto(context.Background(), "ref-2", "later insert")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if photos[0].Caption != "later insert" {
		t.Fatalf("expected the later insert to sort first on a timestamp tie, got %q", photos[0].Caption)
	}
}

func TestResetAllClearsBothCollections(t *testing.T) {
	store := &fakeStore{
		activities: []ActivityRecord{activityOn(statsNow, "Recycling", 10)},
		photos:     []PhotoRecord{{ID: "p1", ImageRef: "ref", CreatedAt: statsNow}},
	}
	service := newTestService(store)

	if err := service.ResetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if store.clearCalls != 1 {
		t.Fatalf("expected one clear call got %d", store.clearCalls)
	}

	snapshot, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if snapshot.TotalActivities != 0 || snapshot.BestCategory != NoBestCategory {
		t.Fatalf("expected empty snapshot after reset got %+v", snapshot)
	}

	// The store stays usable after a reset.
	if _, err := service.RecordActivity(context.Background(), ActivityInput{
		Description: "back to logging",
		Category:    "Recycling",
	}); err != nil {
		t.Fatalf("append after reset failed: %v", err)
	}
}
