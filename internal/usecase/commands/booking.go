package commands

import (
	"context"
	"errors"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrPersistence     = errs.New("booking store failure")
)

// Domain failures that reach the caller untouched.
var domainErrors = []error{
	booking.ErrInvalidTimeRange,
	booking.ErrInvalidTimeOfDay,
	booking.ErrInvalidDate,
	booking.ErrNegativePrice,
	booking.ErrNotesTooLong,
	booking.ErrInvalidStatus,
	booking.ErrInvalidTransition,
	booking.ErrSlotConflict,
}

type CreateBookingParams struct {
	ResourceID uuid.UUID
	SubjectID  uuid.UUID
	ServiceID  uuid.UUID
	Range      booking.TimeRange
	TotalPrice int64
	Notes      string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, p CreateBookingParams) (*booking.Booking, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	CompleteBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	RescheduleBooking(ctx context.Context, id uuid.UUID, tr booking.TimeRange) (*booking.Booking, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	checker booking.ConflictChecker
	clock   clock.Clock
	loc     *time.Location
}

// NewBookingCommands builds the reservation service. loc is the business time zone
// used to decide when a booked range has ended.
func NewBookingCommands(uow shared.UnitOfWork, checker booking.ConflictChecker, clk clock.Clock, loc *time.Location) BookingCommands {
	if loc == nil {
		loc = time.UTC
	}
	return &bookingCommandsImpl{
		uow:     uow,
		checker: checker,
		clock:   clk,
		loc:     loc,
	}
}

// CreateBooking holds the resource lock across the conflict check and the insert,
// so two overlapping requests can never both succeed.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, p CreateBookingParams) (*booking.Booking, error) {
	if err := p.Range.Validate(); err != nil {
		return nil, err
	}

	candidate, err := booking.NewBooking(c.clock, booking.NewBookingParams{
		ResourceID: p.ResourceID,
		SubjectID:  p.SubjectID,
		ServiceID:  p.ServiceID,
		Range:      p.Range,
		TotalPrice: p.TotalPrice,
		Notes:      p.Notes,
	})
	if err != nil {
		return nil, err
	}

	var created *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockResource(ctx, p.ResourceID); err != nil {
			return err
		}

		existing, err := tx.Bookings().FindActiveByResourceAndDate(ctx, p.ResourceID, p.Range.Date())
		if err != nil {
			return err
		}
		if err := booking.CheckSlot(c.checker, p.ResourceID, p.Range, existing, uuid.Nil); err != nil {
			return err
		}

		created, err = tx.Bookings().Insert(ctx, candidate)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return created, nil
}

func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.Confirm(now)
	})
}

func (c *bookingCommandsImpl) CompleteBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	})
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(now)
	})
}

func (c *bookingCommandsImpl) MarkNoShow(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.MarkNoShow(now, c.loc)
	})
}

// RescheduleBooking locks the booking, then the resource. Create only ever takes the
// resource lock and status changes only the booking lock, so the order cannot deadlock.
func (c *bookingCommandsImpl) RescheduleBooking(ctx context.Context, id uuid.UUID, tr booking.TimeRange) (*booking.Booking, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}

	var updated *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := b.CheckReschedulable(); err != nil {
			return err
		}

		if err := tx.LockResource(ctx, b.ResourceID()); err != nil {
			return err
		}
		existing, err := tx.Bookings().FindActiveByResourceAndDate(ctx, b.ResourceID(), tr.Date())
		if err != nil {
			return err
		}
		if err := booking.CheckSlot(c.checker, b.ResourceID(), tr, existing, id); err != nil {
			return err
		}

		if err := b.Reschedule(tr, c.clock.Now()); err != nil {
			return err
		}
		updated, err = tx.Bookings().UpdateRange(ctx, id, b.TimeRange(), b.UpdatedAt())
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return updated, nil
}

func (c *bookingCommandsImpl) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*booking.Booking, error) {
	var updated *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := b.UpdateNotes(notes, c.clock.Now()); err != nil {
			return err
		}
		updated, err = tx.Bookings().UpdateNotes(ctx, id, b.Notes().String(), b.UpdatedAt())
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return updated, nil
}

func (c *bookingCommandsImpl) transition(ctx context.Context, id uuid.UUID, apply func(b *booking.Booking, now time.Time) error) (*booking.Booking, error) {
	var updated *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(b, c.clock.Now()); err != nil {
			return err
		}
		updated, err = tx.Bookings().UpdateStatus(ctx, id, b.Status(), b.UpdatedAt())
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return updated, nil
}

// classify maps whatever left the unit of work onto the service's error kinds.
func classify(err error) error {
	for _, target := range domainErrors {
		if errs.Is(err, target) {
			return err
		}
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case infra.IsKind(err, infra.KindExclusionViolated):
		return &booking.ConflictError{}
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrBookingNotFound)
	default:
		return errs.Mark(err, ErrPersistence)
	}
}
