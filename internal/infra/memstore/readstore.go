package memstore

import (
	"bytes"
	"context"
	"slices"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// ReadStore serves the query side from committed bookings only.
type ReadStore struct {
	store *Store
}

func NewReadStore(store *Store) *ReadStore {
	return &ReadStore{store: store}
}

func (r *ReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	b, ok := r.store.get(id)
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return queries.BookingViewFromDomain(b), nil
}

func (r *ReadStore) FindFirstPage(ctx context.Context, f queries.ListFilter, limit int32) ([]*queries.BookingView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page", err)
	}
	return r.page(f, nil, limit), nil
}

func (r *ReadStore) FindKeyset(ctx context.Context, f queries.ListFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings keyset", err)
	}
	after := func(b *booking.Booking) bool {
		return compareKey(b.CreatedAt(), b.ID(), lastCreatedAt, lastID) < 0
	}
	return r.page(f, after, limit), nil
}

func (r *ReadStore) page(f queries.ListFilter, after func(*booking.Booking) bool, limit int32) []*queries.BookingView {
	rows := r.store.snapshot(func(b *booking.Booking) bool {
		return matches(f, b) && (after == nil || after(b))
	})

	// created_at DESC, id DESC
	slices.SortFunc(rows, func(a, b *booking.Booking) int {
		return compareKey(b.CreatedAt(), b.ID(), a.CreatedAt(), a.ID())
	})

	if limit >= 0 && int(limit) < len(rows) {
		rows = rows[:limit]
	}
	views := make([]*queries.BookingView, len(rows))
	for i, b := range rows {
		views[i] = queries.BookingViewFromDomain(b)
	}
	return views
}

func matches(f queries.ListFilter, b *booking.Booking) bool {
	date := b.TimeRange().Date()
	switch {
	case f.Status != nil && b.Status() != *f.Status:
		return false
	case f.ResourceID != nil && b.ResourceID() != *f.ResourceID:
		return false
	case f.SubjectID != nil && b.SubjectID() != *f.SubjectID:
		return false
	case f.ServiceID != nil && b.ServiceID() != *f.ServiceID:
		return false
	case f.DateFrom != nil && date.Before(dateOnly(*f.DateFrom)):
		return false
	case f.DateTo != nil && date.After(dateOnly(*f.DateTo)):
		return false
	}
	return true
}

// compareKey orders by (createdAt, id) the way Postgres compares the row tuple.
func compareKey(at time.Time, id uuid.UUID, otherAt time.Time, otherID uuid.UUID) int {
	if c := at.Compare(otherAt); c != 0 {
		return c
	}
	return bytes.Compare(id[:], otherID[:])
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
