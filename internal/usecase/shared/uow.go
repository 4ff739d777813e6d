package shared

import (
	"context"
	"time"

	"salon-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction. A non-nil error from fn rolls back every write.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	// LockResource serializes writers of one resource until the transaction ends.
	LockResource(ctx context.Context, resourceID uuid.UUID) error
}

type BookingRepository interface {
	// FindActiveByResourceAndDate returns PENDING and CONFIRMED bookings only.
	FindActiveByResourceAndDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*booking.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByIDForUpdate locks the row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Insert(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, at time.Time) (*booking.Booking, error)
	UpdateRange(ctx context.Context, id uuid.UUID, tr booking.TimeRange, at time.Time) (*booking.Booking, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string, at time.Time) (*booking.Booking, error)
}
