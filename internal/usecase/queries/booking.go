package queries

import (
	"context"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/infra"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
	ErrInvalidCursor   = errs.New("invalid cursor")
	ErrInvalidFilter   = errs.New("invalid filter")
)

type BookingView struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resource_id"`
	SubjectID  uuid.UUID `json:"subject_id"`
	ServiceID  uuid.UUID `json:"service_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	TotalPrice int64     `json:"total_price"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func BookingViewFromDomain(b *booking.Booking) *BookingView {
	tr := b.TimeRange()
	return &BookingView{
		ID:         b.ID(),
		ResourceID: b.ResourceID(),
		SubjectID:  b.SubjectID(),
		ServiceID:  b.ServiceID(),
		Date:       tr.DateString(),
		StartTime:  tr.Start().String(),
		EndTime:    tr.End().String(),
		Status:     b.Status().String(),
		TotalPrice: b.TotalPrice().Amount(),
		Notes:      patch.NonZero(b.Notes().String()),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}

// ListFilter narrows a listing. Nil fields do not filter.
type ListFilter struct {
	Status     *booking.Status
	ResourceID *uuid.UUID
	SubjectID  *uuid.UUID
	ServiceID  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

func (f ListFilter) Validate() error {
	if f.Status != nil && !f.Status.IsValid() {
		return errs.Wrapf(ErrInvalidFilter, "unknown status %q", *f.Status)
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return errs.Wrap(ErrInvalidFilter, "dateTo is before dateFrom")
	}
	return nil
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindFirstPage(ctx context.Context, f ListFilter, limit int32) ([]*BookingView, error)
	FindKeyset(ctx context.Context, f ListFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the ownership check; it serves internal callers such as idempotent replays.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actor user.Actor, f ListFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	repo BookingReadStore
}

func NewBookingQueries(repo BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	v, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(v.SubjectID) {
		return nil, ErrBookingAccess
	}
	return v, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor user.Actor, f ListFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}

	// Customers only ever see their own bookings.
	if !actor.IsStaff() {
		if f.SubjectID != nil && *f.SubjectID != actor.ID {
			return nil, nil, ErrBookingAccess
		}
		self := actor.ID
		f.SubjectID = &self
	}

	limit = ValidateLimit(limit)
	var rows []*BookingView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindFirstPage(ctx, f, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindKeyset(ctx, f, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
