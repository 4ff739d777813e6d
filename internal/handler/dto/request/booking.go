package request

import (
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/pkg/patch"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID uuid.UUID `json:"resourceId" binding:"required"`
	// SubjectID defaults to the caller. Only staff may book for someone else.
	SubjectID  *uuid.UUID `json:"customerId,omitempty"`
	ServiceID  uuid.UUID  `json:"serviceId" binding:"required"`
	Date       string     `json:"date" binding:"required,ymd"`
	StartTime  string     `json:"startTime" binding:"required,hhmm"`
	EndTime    string     `json:"endTime" binding:"required,hhmm"`
	TotalPrice *int64     `json:"totalPrice" binding:"required,gte=0"`
	Notes      *string    `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

func (r CreateBookingRequest) Subject(actor user.Actor) uuid.UUID {
	if id := patch.Coalesce(r.SubjectID, uuid.Nil); id != uuid.Nil {
		return id
	}
	return actor.ID
}

func (r CreateBookingRequest) ToParams(actor user.Actor) (commands.CreateBookingParams, error) {
	tr, err := booking.ParseTimeRange(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return commands.CreateBookingParams{}, err
	}
	return commands.CreateBookingParams{
		ResourceID: r.ResourceID,
		SubjectID:  r.Subject(actor),
		ServiceID:  r.ServiceID,
		Range:      tr,
		TotalPrice: patch.Coalesce(r.TotalPrice, 0),
		Notes:      patch.Coalesce(r.Notes, ""),
	}, nil
}

type RescheduleBookingRequest struct {
	Date      string `json:"date" binding:"required,ymd"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
}

func (r RescheduleBookingRequest) ToRange() (booking.TimeRange, error) {
	return booking.ParseTimeRange(r.Date, r.StartTime, r.EndTime)
}

type UpdateNotesRequest struct {
	Notes *string `json:"notes" binding:"required,max=1000"`
}

type ListBookingsQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED NO_SHOW"`
	ResourceID string `form:"resourceId" binding:"omitempty,uuid"`
	SubjectID  string `form:"customerId" binding:"omitempty,uuid"`
	ServiceID  string `form:"serviceId" binding:"omitempty,uuid"`
	DateFrom   string `form:"dateFrom" binding:"omitempty,ymd"`
	DateTo     string `form:"dateTo" binding:"omitempty,ymd"`
	After      string `form:"after"`
	Limit      *int   `form:"limit" binding:"omitempty,min=1,max=100"`
}

// PageSize is 0 when no limit was sent; the query side applies its default.
func (q ListBookingsQuery) PageSize() int {
	return patch.Coalesce(q.Limit, 0)
}

// ToFilter expects a query that already passed binding validation.
func (q ListBookingsQuery) ToFilter() (queries.ListFilter, error) {
	var f queries.ListFilter
	if q.Status != "" {
		s, err := booking.ParseStatus(q.Status)
		if err != nil {
			return f, err
		}
		f.Status = &s
	}

	var err error
	if f.ResourceID, err = parseOptionalUUID(q.ResourceID); err != nil {
		return f, err
	}
	if f.SubjectID, err = parseOptionalUUID(q.SubjectID); err != nil {
		return f, err
	}
	if f.ServiceID, err = parseOptionalUUID(q.ServiceID); err != nil {
		return f, err
	}
	if f.DateFrom, err = parseOptionalDate(q.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = parseOptionalDate(q.DateTo); err != nil {
		return f, err
	}
	return f, nil
}

func (q ListBookingsQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := booking.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
