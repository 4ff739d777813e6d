package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key         string     `json:"key"`
	Status      string     `json:"status"`
	RequestHash string     `json:"requestHash"`
	BookingID   *uuid.UUID `json:"bookingId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// IdempotencyStore remembers the outcome of a create request per (scope, key).
type IdempotencyStore interface {
	// Claim returns (nil, true, nil) when the caller now owns the key,
	// or the existing record and false when someone else got there first.
	Claim(ctx context.Context, scope, key, requestHash string, ttl time.Duration) (*IdempotencyRecord, bool, error)
	Complete(ctx context.Context, scope, key, requestHash string, bookingID uuid.UUID, ttl time.Duration) error
	// Release drops an unfinished claim so the request can be retried.
	Release(ctx context.Context, scope, key string) error
}
