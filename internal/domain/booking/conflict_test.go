//go:build unit

package booking_test

import (
	"testing"

	"salon-booking/internal/domain/booking"
	"salon-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearConflictChecker(t *testing.T) {
	checker := booking.NewLinearConflictChecker()
	resource := uuid.New()

	existing := func(start, end string, status booking.Status) *booking.Booking {
		return builder.NewBookingBuilder().
			WithResource(resource).
			WithSlot("2024-01-15", start, end).
			WithStatus(status).
			BuildReconstructed()
	}

	first := existing("14:00", "15:00", booking.StatusPending)
	second := existing("16:00", "17:00", booking.StatusConfirmed)
	cancelled := existing("10:00", "11:00", booking.StatusCancelled)
	noShow := existing("11:00", "12:00", booking.StatusNoShow)
	completed := existing("12:00", "13:00", booking.StatusCompleted)
	all := []*booking.Booking{cancelled, noShow, completed, first, second}

	cases := []struct {
		name      string
		candidate [3]string
		exclude   uuid.UUID
		want      *booking.Booking
	}{
		{name: "overlaps pending booking", candidate: [3]string{"2024-01-15", "14:30", "15:30"}, want: first},
		{name: "overlaps confirmed booking", candidate: [3]string{"2024-01-15", "15:30", "16:30"}, want: second},
		{name: "adjacent slot is free", candidate: [3]string{"2024-01-15", "15:00", "16:00"}},
		{name: "cancelled slot is free", candidate: [3]string{"2024-01-15", "10:00", "11:00"}},
		{name: "no-show slot is free", candidate: [3]string{"2024-01-15", "11:00", "12:00"}},
		{name: "completed slot is free", candidate: [3]string{"2024-01-15", "12:00", "13:00"}},
		{name: "other date is free", candidate: [3]string{"2024-01-16", "14:00", "15:00"}},
		{name: "own booking is excluded", candidate: [3]string{"2024-01-15", "14:15", "15:15"}, exclude: first.ID()},
		{name: "excluding one still sees another", candidate: [3]string{"2024-01-15", "14:30", "16:30"}, exclude: first.ID(), want: second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := mustRange(t, tc.candidate[0], tc.candidate[1], tc.candidate[2])
			got := checker.FindConflict(resource, candidate, all, tc.exclude)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("short-circuits on the first overlap", func(t *testing.T) {
		wide := mustRange(t, "2024-01-15", "13:00", "18:00")
		assert.Same(t, first, checker.FindConflict(resource, wide, all, uuid.Nil))
	})

	t.Run("ignores other resources", func(t *testing.T) {
		candidate := mustRange(t, "2024-01-15", "14:00", "15:00")
		assert.Nil(t, checker.FindConflict(uuid.New(), candidate, all, uuid.Nil))
	})

	t.Run("CheckSlot reports the holder", func(t *testing.T) {
		candidate := mustRange(t, "2024-01-15", "14:00", "15:00")
		err := booking.CheckSlot(checker, resource, candidate, all, uuid.Nil)
		require.ErrorIs(t, err, booking.ErrSlotConflict)

		var ce *booking.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, first.ID(), ce.ConflictingID)
		assert.Contains(t, ce.Error(), first.ID().String())

		assert.NoError(t, booking.CheckSlot(checker, resource, candidate, nil, uuid.Nil))
	})
}
