package memstore

import (
	"context"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Within stages every write in the transaction and applies them only when fn
// succeeds and ctx is still live. Locks taken through the tx are released on return.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t := &memTx{
		store:  u.store,
		held:   make(map[string]struct{}),
		staged: make(map[uuid.UUID]*booking.Booking),
	}
	defer t.releaseAll()

	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.apply(t.staged)
	return nil
}

type memTx struct {
	store  *Store
	held   map[string]struct{}
	staged map[uuid.UUID]*booking.Booking
}

func (t *memTx) Bookings() shared.BookingRepository {
	return &txRepository{tx: t}
}

func (t *memTx) LockResource(ctx context.Context, resourceID uuid.UUID) error {
	return t.lock(ctx, "resource:"+resourceID.String())
}

func (t *memTx) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}
	if err := t.store.locks.acquire(ctx, key); err != nil {
		return infra.WrapRepoErr("failed to acquire lock "+key, err)
	}
	t.held[key] = struct{}{}
	return nil
}

func (t *memTx) releaseAll() {
	for key := range t.held {
		t.store.locks.release(key)
	}
	clear(t.held)
}

// current returns what this transaction sees for id: its own staged write first.
func (t *memTx) current(id uuid.UUID) (*booking.Booking, bool) {
	if b, ok := t.staged[id]; ok {
		return b.Clone(), true
	}
	return t.store.get(id)
}

// activeOn merges committed and staged bookings on the resource and date.
func (t *memTx) activeOn(resourceID uuid.UUID, date time.Time) []*booking.Booking {
	on := func(b *booking.Booking) bool {
		return b.ResourceID() == resourceID && b.TimeRange().Date().Equal(date) && b.IsActive()
	}
	committed := t.store.snapshot(on)
	out := make([]*booking.Booking, 0, len(committed)+len(t.staged))
	for _, b := range committed {
		if _, shadowed := t.staged[b.ID()]; !shadowed {
			out = append(out, b)
		}
	}
	for _, b := range t.staged {
		if on(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

type txRepository struct {
	tx *memTx
}

func (r *txRepository) FindActiveByResourceAndDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}
	y, m, d := date.Date()
	return r.tx.activeOn(resourceID, time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), nil
}

func (r *txRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	b, ok := r.tx.current(id)
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *txRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := r.tx.lock(ctx, "booking:"+id.String()); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *txRepository) Insert(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to insert booking", err)
	}
	if _, exists := r.tx.current(b.ID()); exists {
		return nil, infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	if err := r.checkExclusion(b); err != nil {
		return nil, err
	}
	r.tx.staged[b.ID()] = b.Clone()
	return b.Clone(), nil
}

func (r *txRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, at time.Time) (*booking.Booking, error) {
	return r.update(ctx, id, "failed to update booking status", func(b *booking.Booking) *booking.Booking {
		return rebuild(b, status, b.TimeRange(), b.Notes().String(), at)
	})
}

func (r *txRepository) UpdateRange(ctx context.Context, id uuid.UUID, tr booking.TimeRange, at time.Time) (*booking.Booking, error) {
	return r.update(ctx, id, "failed to reschedule booking", func(b *booking.Booking) *booking.Booking {
		return rebuild(b, b.Status(), tr, b.Notes().String(), at)
	})
}

func (r *txRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string, at time.Time) (*booking.Booking, error) {
	return r.update(ctx, id, "failed to update booking notes", func(b *booking.Booking) *booking.Booking {
		return rebuild(b, b.Status(), b.TimeRange(), notes, at)
	})
}

func (r *txRepository) update(ctx context.Context, id uuid.UUID, msg string, change func(*booking.Booking) *booking.Booking) (*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	cur, ok := r.tx.current(id)
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	next := change(cur)
	if err := r.checkExclusion(next); err != nil {
		return nil, err
	}
	r.tx.staged[id] = next
	return next.Clone(), nil
}

// checkExclusion mirrors the database exclusion constraint on active bookings.
func (r *txRepository) checkExclusion(b *booking.Booking) error {
	if !b.IsActive() {
		return nil
	}
	tr := b.TimeRange()
	for _, other := range r.tx.activeOn(b.ResourceID(), tr.Date()) {
		if other.ID() != b.ID() && other.TimeRange().Overlaps(tr) {
			return infra.WrapRepoErr("booking overlaps an active booking", nil, infra.KindExclusionViolated)
		}
	}
	return nil
}

func rebuild(b *booking.Booking, status booking.Status, tr booking.TimeRange, notes string, at time.Time) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.ResourceID(), b.SubjectID(), b.ServiceID(),
		tr, status, b.TotalPrice().Amount(), notes,
		b.CreatedAt(), at,
	)
}
