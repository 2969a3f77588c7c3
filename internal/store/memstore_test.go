package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akhillingutla-us/EcoTracker/internal/domain"
)

func TestMemoryStoreLoadsAreCopies(t *testing.T) {
	ctx := context.Background()
	ms := NewMemory()

	require.NoError(t, ms.AppendActivity(ctx, domain.ActivityRecord{ID: "a1", Description: "recycled", Category: "Recycling", Points: 10, CreatedAt: time.Now().UTC()}))

	first, err := ms.LoadActivities(ctx)
	require.NoError(t, err)
	first[0].Points = 999

	second, err := ms.LoadActivities(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, second[0].Points, "mutating a loaded copy must not touch the store")
}

func TestMemoryStoreClearAll(t *testing.T) {
	ctx := context.Background()
	ms := NewMemory()

	require.NoError(t, ms.AppendActivity(ctx, domain.ActivityRecord{ID: "a1"}))
	require.NoError(t, ms.AppendPhoto(ctx, domain.PhotoRecord{ID: "p1"}))
	require.NoError(t, ms.ClearAll(ctx))

	activities, err := ms.LoadActivities(ctx)
	require.NoError(t, err)
	require.Empty(t, activities)

	photos, err := ms.LoadPhotos(ctx)
	require.NoError(t, err)
	require.Empty(t, photos)

	require.NoError(t, ms.AppendPhoto(ctx, domain.PhotoRecord{ID: "p2"}))
	photos, err = ms.LoadPhotos(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 1)
}
