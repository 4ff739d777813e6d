package shared

import (
	"context"
	"time"

	"salon-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated     EventType = "booking.created"
	EventBookingConfirmed   EventType = "booking.confirmed"
	EventBookingCompleted   EventType = "booking.completed"
	EventBookingCancelled   EventType = "booking.cancelled"
	EventBookingNoShow      EventType = "booking.no_show"
	EventBookingRescheduled EventType = "booking.rescheduled"
)

type BookingEvent struct {
	Type       EventType `json:"type"`
	BookingID  uuid.UUID `json:"bookingId"`
	ResourceID uuid.UUID `json:"resourceId"`
	SubjectID  uuid.UUID `json:"customerId"`
	Status     string    `json:"status"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher delivers booking events after the write has committed.
type EventPublisher interface {
	Publish(ctx context.Context, ev BookingEvent) error
}

func NewBookingEvent(t EventType, b *booking.Booking, at time.Time) BookingEvent {
	tr := b.TimeRange()
	return BookingEvent{
		Type:       t,
		BookingID:  b.ID(),
		ResourceID: b.ResourceID(),
		SubjectID:  b.SubjectID(),
		Status:     b.Status().String(),
		Date:       tr.DateString(),
		StartTime:  tr.Start().String(),
		EndTime:    tr.End().String(),
		OccurredAt: at.UTC(),
	}
}
