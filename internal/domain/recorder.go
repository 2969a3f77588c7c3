package domain

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/akhillingutla-us/EcoTracker/internal/observability"
)

// maxDurationBonus caps how many points the duration contributes,
// regardless of how long an activity runs.
const maxDurationBonus = 30

// ActivityInput carries the user-entered field values for a new activity.
// DurationMinutes arrives as raw text; unparsable or negative input counts
// as zero minutes.
type ActivityInput struct {
	Description     string
	Category        string
	DurationMinutes string
	Notes           string
}

// RecordActivity validates the input, computes the frozen point value and
// appends a new immutable record. Validation failures report the missing
// field and leave the store untouched.
func (s *Service) RecordActivity(ctx context.Context, input ActivityInput) (*ActivityRecord, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, &ValidationError{Field: "description"}
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, &ValidationError{Field: "category"}
	}

	duration := parseDurationMinutes(input.DurationMinutes)
	bonus := duration
	if bonus > maxDurationBonus {
		bonus = maxDurationBonus
	}

	record := ActivityRecord{
		ID:              uuid.NewString(),
		Description:     description,
		Category:        category,
		DurationMinutes: duration,
		Notes:           strings.TrimSpace(input.Notes),
		Points:          s.table.BasePoints(category) + bonus,
		CreatedAt:       s.now(),
	}

	if err := s.store.AppendActivity(ctx, record); err != nil {
		observability.RecordStoreFailure("append")
		return nil, err
	}
	observability.RecordActivityLogged(record.CreatedAt)
	return &record, nil
}

// RecordPhoto appends a new photo record, defaulting a blank caption, and
// returns the full photo collection ordered newest-first for display.
func (s *Service) RecordPhoto(ctx context.Context, imageRef, caption string) ([]PhotoRecord, error) {
	if strings.TrimSpace(imageRef) == "" {
		return nil, &ValidationError{Field: "imageRef"}
	}
	caption = strings.TrimSpace(caption)
	if caption == "" {
		caption = DefaultPhotoCaption
	}

	record := PhotoRecord{
		ID:        uuid.NewString(),
		ImageRef:  imageRef,
		Caption:   caption,
		CreatedAt: s.now(),
	}

	if err := s.store.AppendPhoto(ctx, record); err != nil {
		observability.RecordStoreFailure("append")
		return nil, err
	}
	observability.RecordPhotoLogged(record.CreatedAt)

	photos, err := s.store.LoadPhotos(ctx)
	if err != nil {
		observability.RecordStoreFailure("load")
		return nil, err
	}
	return sortPhotosNewestFirst(photos), nil
}

// sortPhotosNewestFirst orders by CreatedAt descending. The input slice is
// in insertion order; reversing before the stable sort makes the more
// recently inserted record win timestamp ties.
func sortPhotosNewestFirst(photos []PhotoRecord) []PhotoRecord {
	out := make([]PhotoRecord, len(photos))
	for i, p := range photos {
		out[len(photos)-1-i] = p
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func parseDurationMinutes(raw string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
