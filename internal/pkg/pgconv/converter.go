package pgconv

import (
	"errors"
	"time"

	"salon-booking/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	PgErrUniqueViolation     = "23505"
	PgErrForeignKeyViolation = "23503"
	PgErrExclusionViolation  = "23P01"
	PgErrCheckViolation      = "23514"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day in pgtype.Time")

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func StringFromPgtype(pt pgtype.Text) string {
	if !pt.Valid {
		return ""
	}
	return pt.String
}

// StringToPgtype maps the empty string to NULL.
func StringToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func DateToPgtype(d time.Time) pgtype.Date {
	return pgtype.Date{Time: d, Valid: true}
}

func DatePtrToPgtype(d *time.Time) pgtype.Date {
	if d == nil {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: *d, Valid: true}
}

func DateFromPgtype(pd pgtype.Date) time.Time {
	if !pd.Valid {
		return time.Time{}
	}
	y, m, d := pd.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TimeOfDayToPgtype(t booking.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.Duration().Microseconds(), Valid: true}
}

func TimeOfDayFromPgtype(pt pgtype.Time) (booking.TimeOfDay, error) {
	if !pt.Valid {
		return 0, ErrInvalidTimeOfDay
	}
	return booking.TimeOfDayFromDuration(time.Duration(pt.Microseconds) * time.Microsecond)
}

func TimeRangeFromPgtype(date pgtype.Date, start, end pgtype.Time) (booking.TimeRange, error) {
	s, err := TimeOfDayFromPgtype(start)
	if err != nil {
		return booking.TimeRange{}, err
	}
	e, err := TimeOfDayFromPgtype(end)
	if err != nil {
		return booking.TimeRange{}, err
	}
	return booking.NewTimeRange(DateFromPgtype(date), s, e)
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// PgErrorCode returns the SQLSTATE of a server error, or "" for anything else.
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
