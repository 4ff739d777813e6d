//go:build unit

package booking_test

import (
	"testing"

	"salon-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	allowed := map[[2]booking.Status]bool{
		{booking.StatusPending, booking.StatusConfirmed}:   true,
		{booking.StatusPending, booking.StatusCancelled}:   true,
		{booking.StatusPending, booking.StatusNoShow}:      true,
		{booking.StatusConfirmed, booking.StatusCompleted}: true,
		{booking.StatusConfirmed, booking.StatusCancelled}: true,
		{booking.StatusConfirmed, booking.StatusNoShow}:    true,
	}

	for _, from := range booking.AllStatuses() {
		for _, to := range booking.AllStatuses() {
			want := allowed[[2]booking.Status{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status   booking.Status
		active   bool
		terminal bool
	}{
		{booking.StatusPending, true, false},
		{booking.StatusConfirmed, true, false},
		{booking.StatusCompleted, false, true},
		{booking.StatusCancelled, false, true},
		{booking.StatusNoShow, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.active, tc.status.IsActive())
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())
			assert.True(t, tc.status.IsValid())
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := booking.ParseStatus("NO_SHOW")
	assert.NoError(t, err)
	assert.Equal(t, booking.StatusNoShow, s)

	_, err = booking.ParseStatus("confirmed")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)

	assert.False(t, booking.Status("ARCHIVED").CanTransitionTo(booking.StatusPending))
	assert.False(t, booking.Status("ARCHIVED").IsTerminal())
}
