package converter

import (
	"salon-booking/internal/domain/booking"
	sqlc "salon-booking/internal/infra/sqlc/generated"
	"salon-booking/internal/pkg/pgconv"
)

func BookingToInsertParams(b *booking.Booking) sqlc.InsertBookingParams {
	tr := b.TimeRange()
	return sqlc.InsertBookingParams{
		ID:          b.ID(),
		ResourceID:  b.ResourceID(),
		SubjectID:   b.SubjectID(),
		ServiceID:   b.ServiceID(),
		BookingDate: pgconv.DateToPgtype(tr.Date()),
		StartTime:   pgconv.TimeOfDayToPgtype(tr.Start()),
		EndTime:     pgconv.TimeOfDayToPgtype(tr.End()),
		Status:      b.Status().String(),
		TotalPrice:  b.TotalPrice().Amount(),
		Notes:       pgconv.StringToPgtype(b.Notes().String()),
		CreatedAt:   pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

// BookingFromRow trusts the row; the table constraints already enforce the aggregate's rules.
func BookingFromRow(row sqlc.Bookings) (*booking.Booking, error) {
	tr, err := pgconv.TimeRangeFromPgtype(row.BookingDate, row.StartTime, row.EndTime)
	if err != nil {
		return nil, err
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		row.ID, row.ResourceID, row.SubjectID, row.ServiceID,
		tr, status, row.TotalPrice, pgconv.StringFromPgtype(row.Notes),
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func BookingsFromRows(rows []sqlc.Bookings) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := BookingFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
