package repository

import (
	"context"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra"
	"salon-booking/internal/infra/repository/converter"
	sqlc "salon-booking/internal/infra/sqlc/generated"
	"salon-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	ListActiveBookingsByResourceAndDate(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveBookingsByResourceAndDateParams) ([]sqlc.Bookings, error)
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	GetBookingByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	InsertBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertBookingParams) (sqlc.Bookings, error)
	UpdateBookingStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingStatusParams) (sqlc.Bookings, error)
	UpdateBookingRange(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingRangeParams) (sqlc.Bookings, error)
	UpdateBookingNotes(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingNotesParams) (sqlc.Bookings, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) FindActiveByResourceAndDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*booking.Booking, error) {
	rows, err := r.queries.ListActiveBookingsByResourceAndDate(ctx, r.db, sqlc.ListActiveBookingsByResourceAndDateParams{
		ResourceID:  resourceID,
		BookingDate: pgconv.DateToPgtype(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}

	bookings, err := converter.BookingsFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking rows", err, infra.KindDBFailure)
	}
	return bookings, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return toDomain(row)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByIDForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return toDomain(row)
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	row, err := r.queries.InsertBooking(ctx, r.db, converter.BookingToInsertParams(b))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to insert booking", err)
	}
	return toDomain(row)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, at time.Time) (*booking.Booking, error) {
	row, err := r.queries.UpdateBookingStatus(ctx, r.db, sqlc.UpdateBookingStatusParams{
		ID:        id,
		Status:    status.String(),
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to update booking status", err)
	}
	return toDomain(row)
}

func (r *BookingRepository) UpdateRange(ctx context.Context, id uuid.UUID, tr booking.TimeRange, at time.Time) (*booking.Booking, error) {
	row, err := r.queries.UpdateBookingRange(ctx, r.db, sqlc.UpdateBookingRangeParams{
		ID:          id,
		BookingDate: pgconv.DateToPgtype(tr.Date()),
		StartTime:   pgconv.TimeOfDayToPgtype(tr.Start()),
		EndTime:     pgconv.TimeOfDayToPgtype(tr.End()),
		UpdatedAt:   pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reschedule booking", err)
	}
	return toDomain(row)
}

func (r *BookingRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string, at time.Time) (*booking.Booking, error) {
	row, err := r.queries.UpdateBookingNotes(ctx, r.db, sqlc.UpdateBookingNotesParams{
		ID:        id,
		Notes:     pgconv.StringToPgtype(notes),
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to update booking notes", err)
	}
	return toDomain(row)
}

func toDomain(row sqlc.Bookings) (*booking.Booking, error) {
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking row", err, infra.KindDBFailure)
	}
	return b, nil
}
