package idempotency

import (
	"context"
	"sync"
	"time"

	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// MemoryStore is the single-process fallback used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	records map[string]memoryEntry
}

type memoryEntry struct {
	record    shared.IdempotencyRecord
	expiresAt time.Time
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		clock:   clk,
		records: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Claim(_ context.Context, scope, key, requestHash string, ttl time.Duration) (*shared.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.pruneLocked(now)
	rk := redisKey(scope, key)
	if e, ok := s.records[rk]; ok && now.Before(e.expiresAt) {
		rec := e.record
		return &rec, false, nil
	}

	s.records[rk] = memoryEntry{
		record: shared.IdempotencyRecord{
			Key:         key,
			Status:      shared.IdempotencyStatusProcessing,
			RequestHash: requestHash,
			CreatedAt:   now.UTC(),
		},
		expiresAt: now.Add(ttl),
	}
	return nil, true, nil
}

func (s *MemoryStore) Complete(_ context.Context, scope, key, requestHash string, bookingID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.records[redisKey(scope, key)] = memoryEntry{
		record: shared.IdempotencyRecord{
			Key:         key,
			Status:      shared.IdempotencyStatusCompleted,
			RequestHash: requestHash,
			BookingID:   &bookingID,
			CreatedAt:   now.UTC(),
		},
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, redisKey(scope, key))
	return nil
}

func (s *MemoryStore) pruneLocked(now time.Time) {
	for k, e := range s.records {
		if !now.Before(e.expiresAt) {
			delete(s.records, k)
		}
	}
}
