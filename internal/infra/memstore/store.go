package memstore

import (
	"sync"

	"salon-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// Store keeps bookings in process memory. It is meant for tests, demos and
// single-instance deployments; data does not survive a restart.
type Store struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*booking.Booking
	locks    *keyLocks
}

func NewStore() *Store {
	return &Store{
		bookings: make(map[uuid.UUID]*booking.Booking),
		locks:    newKeyLocks(),
	}
}

// Len reports the number of committed bookings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

func (s *Store) get(id uuid.UUID) (*booking.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// snapshot copies every committed booking matching keep.
func (s *Store) snapshot(keep func(*booking.Booking) bool) []*booking.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*booking.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

func (s *Store) apply(staged map[uuid.UUID]*booking.Booking) {
	if len(staged) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, b := range staged {
		s.bookings[id] = b
	}
}
