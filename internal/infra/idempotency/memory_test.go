//go:build unit

package idempotency_test

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/infra/idempotency"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	store := idempotency.NewMemoryStore(clk)
	const scope, key = "booking:create:u1", "k-1"

	rec, claimed, err := store.Claim(ctx, scope, key, "hash-a", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Nil(t, rec)

	rec, claimed, err = store.Claim(ctx, scope, key, "hash-a", time.Hour)
	require.NoError(t, err)
	assert.False(t, claimed)
	require.NotNil(t, rec)
	assert.Equal(t, shared.IdempotencyStatusProcessing, rec.Status)
	assert.Equal(t, "hash-a", rec.RequestHash)

	bookingID := uuid.New()
	require.NoError(t, store.Complete(ctx, scope, key, "hash-a", bookingID, time.Hour))

	rec, claimed, err = store.Claim(ctx, scope, key, "hash-a", time.Hour)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, shared.IdempotencyStatusCompleted, rec.Status)
	require.NotNil(t, rec.BookingID)
	assert.Equal(t, bookingID, *rec.BookingID)
}

func TestMemoryStore_ScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := idempotency.NewMemoryStore(clock.NewMockClock(time.Now()))

	_, claimed, err := store.Claim(ctx, "booking:create:u1", "same", "h", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)

	_, claimed, err = store.Claim(ctx, "booking:create:u2", "same", "h", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestMemoryStore_ReleaseAndExpiry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	store := idempotency.NewMemoryStore(clk)

	_, _, err := store.Claim(ctx, "s", "k", "h", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "s", "k"))

	_, claimed, err := store.Claim(ctx, "s", "k", "h", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed, "released key can be claimed again")

	clk.Add(time.Minute)
	_, claimed, err = store.Claim(ctx, "s", "k", "other", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed, "expired key can be claimed again")
}
