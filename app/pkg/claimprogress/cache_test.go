package claimprogress_test

import (
	"context"
	"testing"
	"time"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/pkg/claimprogress"
	"backend/insurance-platform/app/pkg/redis"
	mockRedis "backend/insurance-platform/app/test/mocks/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Progress views are cached as JSON; a cached view must read back unchanged.
func TestTrackSurvivesCache(t *testing.T) {
	ctx := context.Background()
	store := mockRedis.NewInMemoryRedis()
	in := claimprogress.Claim{Type: claim.Theft, Status: claim.Processing, FiledDate: date(2024, time.March, 1)}
	want := claimprogress.Track(in, today)

	calls := 0
	load := func() (claimprogress.Progress, error) {
		calls++
		return claimprogress.Track(in, today), nil
	}

	for range 2 {
		var got claimprogress.Progress
		require.NoError(t, redis.Wrap(ctx, store, "progress:theft:processing", &got, time.Hour, load))

		assert.Equal(t, want.Steps, got.Steps)
		assert.Equal(t, want.CurrentStep, got.CurrentStep)
		assert.InDelta(t, want.Percentage, got.Percentage, 0.0001)
		require.NotNil(t, got.Estimate.EstimatedDate)
		assert.True(t, want.Estimate.EstimatedDate.Equal(*got.Estimate.EstimatedDate))
		assert.Equal(t, *want.Estimate.EstimatedDays, *got.Estimate.EstimatedDays)
		assert.Equal(t, want.Estimate.Message, got.Estimate.Message)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"progress:theft:processing"}, store.Keys())
}
