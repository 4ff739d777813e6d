//go:build unit

package shared_test

import (
	"testing"
	"time"

	"salon-booking/internal/usecase/shared"
	"salon-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingEvent(t *testing.T) {
	b := builder.NewBookingBuilder().BuildReconstructed()
	at := time.Date(2024, 1, 15, 21, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	ev := shared.NewBookingEvent(shared.EventBookingCreated, b, at)

	assert.Equal(t, shared.EventBookingCreated, ev.Type)
	assert.Equal(t, b.ID(), ev.BookingID)
	assert.Equal(t, b.ResourceID(), ev.ResourceID)
	assert.Equal(t, b.SubjectID(), ev.SubjectID)
	assert.Equal(t, "PENDING", ev.Status)
	assert.Equal(t, "2024-01-15", ev.Date)
	assert.Equal(t, "14:00", ev.StartTime)
	assert.Equal(t, "15:00", ev.EndTime)
	assert.Equal(t, time.UTC, ev.OccurredAt.Location())
	assert.True(t, at.Equal(ev.OccurredAt))
}
