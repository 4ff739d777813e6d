//go:build unit

package booking_test

import (
	"testing"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, b.ResourceID, actual.ResourceID())
		assert.Equal(t, b.SubjectID, actual.SubjectID())
		assert.Equal(t, b.ServiceID, actual.ServiceID())
		assert.Equal(t, int64(80000), actual.TotalPrice().Amount())
		assert.Equal(t, "gel polish, short nails", actual.Notes().String())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
		assert.True(t, actual.IsActive())
	})

	t.Run("range validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "start equals end",
				mutate: func(b *builder.BookingBuilder) { b.WithSlot("2024-01-15", "14:00", "14:00") },
				errIs:  booking.ErrInvalidTimeRange,
			},
			{
				name:   "start after end",
				mutate: func(b *builder.BookingBuilder) { b.WithSlot("2024-01-15", "16:00", "14:00") },
				errIs:  booking.ErrInvalidTimeRange,
			},
			{
				name:   "one minute booking",
				mutate: func(b *builder.BookingBuilder) { b.WithSlot("2024-01-15", "14:00", "14:01") },
			},
		})
	})

	t.Run("price validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "free service", mutate: func(b *builder.BookingBuilder) { b.WithTotalPrice(0) }},
			{
				name:   "negative price",
				mutate: func(b *builder.BookingBuilder) { b.WithTotalPrice(-100) },
				errIs:  booking.ErrNegativePrice,
			},
		})
	})

	t.Run("invalid range is reported before invalid price", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().
			WithSlot("2024-01-15", "15:00", "14:00").
			WithTotalPrice(-1).
			BuildDomain()
		assert.ErrorIs(t, err, booking.ErrInvalidTimeRange)
	})
}

func TestLifecycle(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	t.Run("pending to confirmed to completed", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		require.NoError(t, b.Confirm(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.NoError(t, b.Complete(now.Add(time.Minute)))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		assert.Equal(t, now.Add(time.Minute), b.UpdatedAt())
	})

	t.Run("complete directly from pending is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		err := b.Complete(now)
		require.ErrorIs(t, err, booking.ErrInvalidTransition)

		var te *booking.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, booking.StatusPending, te.From)
		assert.Equal(t, booking.StatusCompleted, te.To)
		assert.Equal(t, booking.StatusPending, b.Status(), "failed transition leaves status unchanged")
	})

	t.Run("cancel from pending and confirmed", func(t *testing.T) {
		for _, from := range []booking.Status{booking.StatusPending, booking.StatusConfirmed} {
			b := builder.NewBookingBuilder().WithStatus(from).BuildReconstructed()
			require.NoError(t, b.Cancel(now), from)
			assert.Equal(t, booking.StatusCancelled, b.Status())
			assert.False(t, b.IsActive())
		}
	})

	t.Run("terminal states reject every transition", func(t *testing.T) {
		terminal := []booking.Status{booking.StatusCompleted, booking.StatusCancelled, booking.StatusNoShow}
		for _, from := range terminal {
			ops := map[string]func(*booking.Booking) error{
				"confirm":  func(b *booking.Booking) error { return b.Confirm(now) },
				"complete": func(b *booking.Booking) error { return b.Complete(now) },
				"cancel":   func(b *booking.Booking) error { return b.Cancel(now) },
				"no-show":  func(b *booking.Booking) error { return b.MarkNoShow(now.Add(48*time.Hour), time.UTC) },
			}
			for name, op := range ops {
				b := builder.NewBookingBuilder().WithStatus(from).BuildReconstructed()
				err := op(b)
				assert.ErrorIs(t, err, booking.ErrInvalidTransition, "%s from %s", name, from)
				assert.Equal(t, from, b.Status())
			}
		}
	})

	t.Run("no-show requires the range to have ended", func(t *testing.T) {
		bangkok := time.FixedZone("ICT", 7*60*60)
		// 2024-01-15 15:00 in Bangkok is 08:00 UTC
		end := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

		b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).BuildReconstructed()
		err := b.MarkNoShow(end, bangkok)
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.ErrorIs(t, err, booking.ErrNoShowTooEarly)

		require.NoError(t, b.MarkNoShow(end.Add(time.Second), bangkok))
		assert.Equal(t, booking.StatusNoShow, b.Status())
		assert.True(t, b.Status().IsTerminal())
	})

	t.Run("reschedule moves an active booking", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		next := mustRange(t, "2024-01-16", "10:00", "11:00")
		require.NoError(t, b.Reschedule(next, now))
		assert.Equal(t, next, b.TimeRange())
	})

	t.Run("reschedule rejects terminal bookings", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCompleted).BuildReconstructed()
		before := b.TimeRange()
		err := b.Reschedule(mustRange(t, "2024-01-16", "10:00", "11:00"), now)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.ErrorIs(t, err, booking.ErrBookingNotActive)
		assert.Equal(t, before, b.TimeRange())
	})

	t.Run("notes can change in any status", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildReconstructed()
		require.NoError(t, b.UpdateNotes("customer called to apologise", now))
		assert.Equal(t, "customer called to apologise", b.Notes().String())
	})

	t.Run("clone is independent", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		c := b.Clone()
		require.NoError(t, c.Confirm(now))
		assert.Equal(t, booking.StatusPending, b.Status())
	})
}
