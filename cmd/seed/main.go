// Command seed loads a few sample bookings through the reservation service.
// Staff, customer and service ids are derived from fixed names. A sample that is
// already present in any status is skipped, so reruns leave one copy of each.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra/db"
	"salon-booking/internal/infra/readstore"
	sqlc "salon-booking/internal/infra/sqlc/generated"
	"salon-booking/internal/infra/uow"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/config"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var seedNamespace = uuid.MustParse("6f1c3d0e-8a4b-4e2f-9c61-2b7d5a0e9f13")

func seedID(name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(name))
}

type sampleBooking struct {
	customer, staff, service string
	date, start, end         string
	price                    int64
	notes                    string
	finalStatus              booking.Status
}

var samples = []sampleBooking{
	{"customer-1", "staff-1", "gel-manicure", "2024-01-15", "14:00", "15:00", 50000, "ชอบสีสันสดใส", booking.StatusConfirmed},
	{"customer-2", "staff-2", "thai-massage", "2024-01-20", "10:00", "11:30", 80000, "ชอบนวดแรงๆ", booking.StatusPending},
	{"customer-1", "staff-2", "spa-package", "2024-01-18", "16:00", "18:00", 120000, "นวดแรงๆ ตามที่ชอบ", booking.StatusCompleted},
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Booking.Store != config.StoreDriverPostgres {
		return errs.Newf("BOOKING_STORE is %q, seeding needs postgres", cfg.Booking.Store)
	}
	loc, err := clock.LoadLocation(cfg.Booking.TimeZone)
	if err != nil {
		return err
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer cleanup()

	q := sqlc.New()
	svc := commands.NewBookingCommands(
		uow.NewPostgresUoW(pool, q),
		booking.NewLinearConflictChecker(),
		clock.NewRealClock(),
		loc,
	)
	reads := readstore.NewBookingReadStore(q, pool)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, s := range samples {
		if err := seedOne(ctx, svc, reads, s); err != nil {
			return err
		}
	}
	return nil
}

func seedOne(ctx context.Context, svc commands.BookingCommands, reads queries.BookingReadStore, s sampleBooking) error {
	tr, err := booking.ParseTimeRange(s.date, s.start, s.end)
	if err != nil {
		return err
	}

	seeded, err := alreadySeeded(ctx, reads, s, tr)
	if err != nil {
		return errs.Wrapf(err, "look up existing booking for %s", s.customer)
	}
	if seeded {
		slog.Info("sample already seeded, skipping", "staff", s.staff, "range", tr.String())
		return nil
	}

	b, err := svc.CreateBooking(ctx, commands.CreateBookingParams{
		ResourceID: seedID(s.staff),
		SubjectID:  seedID(s.customer),
		ServiceID:  seedID(s.service),
		Range:      tr,
		TotalPrice: s.price,
		Notes:      s.notes,
	})
	if errs.Is(err, booking.ErrSlotConflict) {
		slog.Warn("slot taken by another booking, skipping", "staff", s.staff, "range", tr.String())
		return nil
	}
	if err != nil {
		return errs.Wrapf(err, "create booking for %s", s.customer)
	}

	id := b.ID()
	switch s.finalStatus {
	case booking.StatusConfirmed:
		b, err = svc.ConfirmBooking(ctx, id)
	case booking.StatusCompleted:
		if _, err = svc.ConfirmBooking(ctx, id); err == nil {
			b, err = svc.CompleteBooking(ctx, id)
		}
	}
	if err != nil {
		return errs.Wrapf(err, "advance booking %s to %s", id, s.finalStatus)
	}

	slog.Info("seeded booking", "id", b.ID().String(), "status", b.Status().String(), "range", tr.String())
	return nil
}

// alreadySeeded matches on the sample's people, service and exact range, whatever
// the booking's status.
func alreadySeeded(ctx context.Context, reads queries.BookingReadStore, s sampleBooking, tr booking.TimeRange) (bool, error) {
	resource, subject, service := seedID(s.staff), seedID(s.customer), seedID(s.service)
	date := tr.Date()
	views, err := reads.FindFirstPage(ctx, queries.ListFilter{
		ResourceID: &resource,
		SubjectID:  &subject,
		ServiceID:  &service,
		DateFrom:   &date,
		DateTo:     &date,
	}, queries.MaxListLimit)
	if err != nil {
		return false, err
	}
	for _, v := range views {
		if v.StartTime == tr.Start().String() && v.EndTime == tr.End().String() {
			return true, nil
		}
	}
	return false, nil
}
