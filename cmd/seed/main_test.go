//go:build unit

package main

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra/memstore"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedOne_RerunKeepsOneCopy(t *testing.T) {
	store := memstore.NewStore()
	clk := clock.NewMockClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	svc := commands.NewBookingCommands(memstore.NewUnitOfWork(store), booking.NewLinearConflictChecker(), clk, time.UTC)
	reads := memstore.NewReadStore(store)
	ctx := context.Background()

	for range 2 {
		for _, s := range samples {
			require.NoError(t, seedOne(ctx, svc, reads, s))
		}
		clk.Add(time.Minute)
	}
	assert.Equal(t, len(samples), store.Len())

	for _, s := range samples {
		tr, err := booking.ParseTimeRange(s.date, s.start, s.end)
		require.NoError(t, err)
		seeded, err := alreadySeeded(ctx, reads, s, tr)
		require.NoError(t, err)
		assert.True(t, seeded, "%s %s", s.staff, tr)
	}
}

func TestSeedOne_FinalStatus(t *testing.T) {
	store := memstore.NewStore()
	clk := clock.NewMockClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	svc := commands.NewBookingCommands(memstore.NewUnitOfWork(store), booking.NewLinearConflictChecker(), clk, time.UTC)
	reads := memstore.NewReadStore(store)
	ctx := context.Background()

	for _, s := range samples {
		require.NoError(t, seedOne(ctx, svc, reads, s))
	}

	page, err := reads.FindFirstPage(ctx, queries.ListFilter{}, 10)
	require.NoError(t, err)
	got := map[string]string{}
	for _, v := range page {
		got[v.Date+" "+v.StartTime] = v.Status
	}
	assert.Equal(t, map[string]string{
		"2024-01-15 14:00": string(booking.StatusConfirmed),
		"2024-01-20 10:00": string(booking.StatusPending),
		"2024-01-18 16:00": string(booking.StatusCompleted),
	}, got)
}
