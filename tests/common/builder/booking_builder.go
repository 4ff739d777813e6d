//go:build unit || e2e

package builder

import (
	"time"

	"salon-booking/internal/domain/booking"
	reqdto "salon-booking/internal/handler/dto/request"
	sqlc "salon-booking/internal/infra/sqlc/generated"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/pgconv"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	SubjectID  uuid.UUID
	ServiceID  uuid.UUID
	Date       string
	Start      string
	End        string
	Status     booking.Status
	TotalPrice int64
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		ResourceID: uuid.New(),
		SubjectID:  uuid.New(),
		ServiceID:  uuid.New(),
		Date:       "2024-01-15",
		Start:      "14:00",
		End:        "15:00",
		Status:     booking.StatusPending,
		TotalPrice: 80000,
		Notes:      "gel polish, short nails",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithResource(id uuid.UUID) *BookingBuilder {
	b.ResourceID = id
	return b
}

func (b *BookingBuilder) WithSlot(date, start, end string) *BookingBuilder {
	b.Date, b.Start, b.End = date, start, end
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithTotalPrice(p int64) *BookingBuilder {
	b.TotalPrice = p
	return b
}

func (b *BookingBuilder) WithNotes(n string) *BookingBuilder {
	b.Notes = n
	return b
}

// BuildRange panics on a malformed slot; use ParseRange in validation tests.
func (b *BookingBuilder) BuildRange() booking.TimeRange {
	tr, err := b.ParseRange()
	if err != nil {
		panic(err)
	}
	return tr
}

func (b *BookingBuilder) ParseRange() (booking.TimeRange, error) {
	return booking.ParseTimeRange(b.Date, b.Start, b.End)
}

// BuildDomain goes through the creation rules, so status and id are assigned by the aggregate.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	tr, err := b.ParseRange()
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(clock.NewMockClock(b.CreatedAt), booking.NewBookingParams{
		ResourceID: b.ResourceID,
		SubjectID:  b.SubjectID,
		ServiceID:  b.ServiceID,
		Range:      tr,
		TotalPrice: b.TotalPrice,
		Notes:      b.Notes,
	})
}

// BuildReconstructed keeps the builder's id and status.
func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID, b.ResourceID, b.SubjectID, b.ServiceID,
		b.BuildRange(), b.Status, b.TotalPrice, b.Notes,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildCreateParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ResourceID: b.ResourceID,
		SubjectID:  b.SubjectID,
		ServiceID:  b.ServiceID,
		Range:      b.BuildRange(),
		TotalPrice: b.TotalPrice,
		Notes:      b.Notes,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	price := b.TotalPrice
	notes := b.Notes
	subject := b.SubjectID
	return reqdto.CreateBookingRequest{
		ResourceID: b.ResourceID,
		SubjectID:  &subject,
		ServiceID:  b.ServiceID,
		Date:       b.Date,
		StartTime:  b.Start,
		EndTime:    b.End,
		TotalPrice: &price,
		Notes:      &notes,
	}
}

func (b *BookingBuilder) BuildRescheduleRequestDTO() reqdto.RescheduleBookingRequest {
	return reqdto.RescheduleBookingRequest{
		Date:      b.Date,
		StartTime: b.Start,
		EndTime:   b.End,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	notes := b.Notes
	return &queries.BookingView{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		SubjectID:  b.SubjectID,
		ServiceID:  b.ServiceID,
		Date:       b.Date,
		StartTime:  b.Start,
		EndTime:    b.End,
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice,
		Notes:      &notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildInfra() sqlc.Bookings {
	tr := b.BuildRange()
	return sqlc.Bookings{
		ID:          b.ID,
		ResourceID:  b.ResourceID,
		SubjectID:   b.SubjectID,
		ServiceID:   b.ServiceID,
		BookingDate: pgconv.DateToPgtype(tr.Date()),
		StartTime:   pgconv.TimeOfDayToPgtype(tr.Start()),
		EndTime:     pgconv.TimeOfDayToPgtype(tr.End()),
		Status:      string(b.Status),
		TotalPrice:  b.TotalPrice,
		Notes:       pgconv.StringToPgtype(b.Notes),
		CreatedAt:   pgconv.TimeToPgtype(b.CreatedAt),
		UpdatedAt:   pgconv.TimeToPgtype(b.UpdatedAt),
	}
}
