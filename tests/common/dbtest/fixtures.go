//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertBooking writes b directly, bypassing the service. Useful for states the
// API cannot reach quickly, such as bookings in the past.
func InsertBooking(t *testing.T, db DBLike, b *booking.Booking) {
	t.Helper()

	tr := b.TimeRange()
	var notes *string
	if !b.Notes().IsEmpty() {
		n := b.Notes().String()
		notes = &n
	}
	_, err := db.Exec(context.Background(), `
		INSERT INTO bookings (id, resource_id, subject_id, service_id, booking_date, start_time, end_time,
		                      status, total_price, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6::time, $7::time, $8, $9, $10, $11, $12)`,
		b.ID(), b.ResourceID(), b.SubjectID(), b.ServiceID(),
		tr.DateString(), tr.Start().String(), tr.End().String(),
		b.Status().String(), b.TotalPrice().Amount(), notes, b.CreatedAt(), b.UpdatedAt(),
	)
	require.NoError(t, err)
}

// CountActiveBookings counts PENDING and CONFIRMED bookings on a resource.
func CountActiveBookings(t *testing.T, db DBLike, resourceID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE resource_id = $1 AND status IN ('PENDING', 'CONFIRMED')",
		resourceID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

func BookingStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM bookings WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

// ResetDB empties the booking table between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE bookings")
	return err
}
