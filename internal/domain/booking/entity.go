package booking

import (
	"time"

	"salon-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Booking struct {
	id         uuid.UUID
	resourceID uuid.UUID
	subjectID  uuid.UUID
	serviceID  uuid.UUID
	timeRange  TimeRange
	status     Status
	totalPrice Money
	notes      Notes
	createdAt  time.Time
	updatedAt  time.Time
}

type NewBookingParams struct {
	ResourceID uuid.UUID
	SubjectID  uuid.UUID
	ServiceID  uuid.UUID
	Range      TimeRange
	TotalPrice int64
	Notes      string
}

// NewBooking creates a PENDING booking. The range is validated before anything else.
func NewBooking(clk clock.Clock, p NewBookingParams) (*Booking, error) {
	if err := p.Range.Validate(); err != nil {
		return nil, err
	}
	price, err := NewMoney(p.TotalPrice)
	if err != nil {
		return nil, err
	}
	notes, err := NewNotes(p.Notes)
	if err != nil {
		return nil, err
	}

	now := stamp(clk.Now())
	return &Booking{
		id:         uuid.New(),
		resourceID: p.ResourceID,
		subjectID:  p.SubjectID,
		serviceID:  p.ServiceID,
		timeRange:  p.Range,
		status:     StatusPending,
		totalPrice: price,
		notes:      notes,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructBooking rebuilds a booking from storage without re-running creation rules.
func ReconstructBooking(
	id, resourceID, subjectID, serviceID uuid.UUID,
	tr TimeRange,
	status Status,
	totalPrice int64,
	notes string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		resourceID: resourceID,
		subjectID:  subjectID,
		serviceID:  serviceID,
		timeRange:  tr,
		status:     status,
		totalPrice: Money{amount: totalPrice},
		notes:      Notes{value: notes},
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) SubjectID() uuid.UUID  { return b.subjectID }
func (b *Booking) ServiceID() uuid.UUID  { return b.serviceID }
func (b *Booking) TimeRange() TimeRange  { return b.timeRange }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) TotalPrice() Money     { return b.totalPrice }
func (b *Booking) Notes() Notes          { return b.notes }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

// Clone returns an independent copy.
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}

func (b *Booking) Confirm(now time.Time) error {
	return b.transition(StatusConfirmed, now)
}

func (b *Booking) Complete(now time.Time) error {
	return b.transition(StatusCompleted, now)
}

func (b *Booking) Cancel(now time.Time) error {
	return b.transition(StatusCancelled, now)
}

// MarkNoShow requires the booked range to have ended in the business time zone.
func (b *Booking) MarkNoShow(now time.Time, loc *time.Location) error {
	if !b.status.CanTransitionTo(StatusNoShow) {
		return &TransitionError{From: b.status, To: StatusNoShow}
	}
	if !now.After(b.timeRange.EndAt(loc)) {
		return &TransitionError{From: b.status, To: StatusNoShow, Reason: ErrNoShowTooEarly}
	}
	return b.transition(StatusNoShow, now)
}

func (b *Booking) CheckReschedulable() error {
	if !b.status.IsActive() {
		return &TransitionError{From: b.status, To: b.status, Reason: ErrBookingNotActive}
	}
	return nil
}

// Reschedule moves an active booking to a new range. Slot availability is the caller's concern.
func (b *Booking) Reschedule(tr TimeRange, now time.Time) error {
	if err := tr.Validate(); err != nil {
		return err
	}
	if err := b.CheckReschedulable(); err != nil {
		return err
	}
	b.timeRange = tr
	b.updatedAt = stamp(now)
	return nil
}

func (b *Booking) UpdateNotes(s string, now time.Time) error {
	notes, err := NewNotes(s)
	if err != nil {
		return err
	}
	b.notes = notes
	b.updatedAt = stamp(now)
	return nil
}

func (b *Booking) transition(to Status, now time.Time) error {
	if !b.status.CanTransitionTo(to) {
		return &TransitionError{From: b.status, To: to}
	}
	b.status = to
	b.updatedAt = stamp(now)
	return nil
}

// storage keeps microsecond precision
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
