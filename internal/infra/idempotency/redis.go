package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "idem:"
	claimRounds = 3
)

// RedisStore keeps idempotency records as JSON values that expire with the key.
type RedisStore struct {
	client redis.Cmdable
	clock  clock.Clock
}

func NewRedisStore(client redis.Cmdable, clk clock.Clock) *RedisStore {
	return &RedisStore{client: client, clock: clk}
}

func (s *RedisStore) Claim(ctx context.Context, scope, key, requestHash string, ttl time.Duration) (*shared.IdempotencyRecord, bool, error) {
	data, err := json.Marshal(shared.IdempotencyRecord{
		Key:         key,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		CreatedAt:   s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, false, errs.Wrap(err, "marshal idempotency record")
	}

	rk := redisKey(scope, key)
	// The existing record can expire between SETNX and GET; try again when it does.
	for range claimRounds {
		ok, err := s.client.SetNX(ctx, rk, data, ttl).Result()
		if err != nil {
			return nil, false, errs.Wrap(err, "claim idempotency key")
		}
		if ok {
			return nil, true, nil
		}

		raw, err := s.client.Get(ctx, rk).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, false, errs.Wrap(err, "read idempotency key")
		}

		var existing shared.IdempotencyRecord
		if err := json.Unmarshal(raw, &existing); err != nil {
			return nil, false, errs.Wrap(err, "decode idempotency record")
		}
		return &existing, false, nil
	}
	return nil, false, errs.New("idempotency key kept expiring during claim")
}

func (s *RedisStore) Complete(ctx context.Context, scope, key, requestHash string, bookingID uuid.UUID, ttl time.Duration) error {
	data, err := json.Marshal(shared.IdempotencyRecord{
		Key:         key,
		Status:      shared.IdempotencyStatusCompleted,
		RequestHash: requestHash,
		BookingID:   &bookingID,
		CreatedAt:   s.clock.Now().UTC(),
	})
	if err != nil {
		return errs.Wrap(err, "marshal idempotency record")
	}
	if err := s.client.Set(ctx, redisKey(scope, key), data, ttl).Err(); err != nil {
		return errs.Wrap(err, "complete idempotency key")
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, redisKey(scope, key)).Err(); err != nil {
		return errs.Wrap(err, "release idempotency key")
	}
	return nil
}

func redisKey(scope, key string) string {
	return keyPrefix + scope + ":" + key
}
