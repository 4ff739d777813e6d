package readstore

import (
	"context"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra"
	sqlc "salon-booking/internal/infra/sqlc/generated"
	"salon-booking/internal/pkg/pgconv"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ListBookingsFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsFirstPageParams) ([]sqlc.Bookings, error)
	ListBookingsKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsKeysetParams) ([]sqlc.Bookings, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return rowToBookingView(row), nil
}

func (r *BookingReadStore) FindFirstPage(ctx context.Context, f queries.ListFilter, limit int32) ([]*queries.BookingView, error) {
	nf := toNullableFilter(f)
	rows, err := r.queries.ListBookingsFirstPage(ctx, r.db, sqlc.ListBookingsFirstPageParams{
		Status:     nf.status,
		ResourceID: nf.resourceID,
		SubjectID:  nf.subjectID,
		ServiceID:  nf.serviceID,
		DateFrom:   nf.dateFrom,
		DateTo:     nf.dateTo,
		Limit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page", err)
	}
	return rowsToBookingViews(rows), nil
}

func (r *BookingReadStore) FindKeyset(ctx context.Context, f queries.ListFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	nf := toNullableFilter(f)
	rows, err := r.queries.ListBookingsKeyset(ctx, r.db, sqlc.ListBookingsKeysetParams{
		Status:     nf.status,
		ResourceID: nf.resourceID,
		SubjectID:  nf.subjectID,
		ServiceID:  nf.serviceID,
		DateFrom:   nf.dateFrom,
		DateTo:     nf.dateTo,
		CreatedAt:  pgconv.TimeToPgtype(lastCreatedAt),
		ID:         lastID,
		Limit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings keyset", err)
	}
	return rowsToBookingViews(rows), nil
}

type nullableFilter struct {
	status     pgtype.Text
	resourceID pgtype.UUID
	subjectID  pgtype.UUID
	serviceID  pgtype.UUID
	dateFrom   pgtype.Date
	dateTo     pgtype.Date
}

func toNullableFilter(f queries.ListFilter) nullableFilter {
	nf := nullableFilter{
		resourceID: pgconv.UUIDPtrToPgtype(f.ResourceID),
		subjectID:  pgconv.UUIDPtrToPgtype(f.SubjectID),
		serviceID:  pgconv.UUIDPtrToPgtype(f.ServiceID),
		dateFrom:   pgconv.DatePtrToPgtype(f.DateFrom),
		dateTo:     pgconv.DatePtrToPgtype(f.DateTo),
	}
	if f.Status != nil {
		nf.status = pgtype.Text{String: f.Status.String(), Valid: true}
	}
	return nf
}

func rowToBookingView(row sqlc.Bookings) *queries.BookingView {
	return &queries.BookingView{
		ID:         row.ID,
		ResourceID: row.ResourceID,
		SubjectID:  row.SubjectID,
		ServiceID:  row.ServiceID,
		Date:       pgconv.DateFromPgtype(row.BookingDate).Format(booking.DateLayout),
		StartTime:  formatTimeOfDay(row.StartTime),
		EndTime:    formatTimeOfDay(row.EndTime),
		Status:     row.Status,
		TotalPrice: row.TotalPrice,
		Notes:      pgconv.StringPtrFromPgtype(row.Notes),
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:  pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func rowsToBookingViews(rows []sqlc.Bookings) []*queries.BookingView {
	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = rowToBookingView(row)
	}
	return result
}

func formatTimeOfDay(pt pgtype.Time) string {
	t, err := pgconv.TimeOfDayFromPgtype(pt)
	if err != nil {
		return ""
	}
	return t.String()
}
