package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/queries"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrIdempotencyInProgress  = errs.New("idempotency in progress")
	ErrIdempotencyKeyMismatch = errs.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
)

type CreateBookingResult struct {
	Booking *queries.BookingView
	// Created is the new aggregate; nil when the result is a replay.
	Created  *booking.Booking
	Replayed bool
}

// IdempotentBookingCreator lets a client retry a create safely by sending the same key.
type IdempotentBookingCreator interface {
	Create(ctx context.Context, actorID uuid.UUID, key string, p CreateBookingParams) (*CreateBookingResult, error)
}

type idempotentCreatorImpl struct {
	commands BookingCommands
	queries  queries.BookingQueries
	store    shared.IdempotencyStore
	ttl      time.Duration
}

func NewIdempotentBookingCreator(
	commands BookingCommands,
	bookingQueries queries.BookingQueries,
	store shared.IdempotencyStore,
	ttl time.Duration,
) IdempotentBookingCreator {
	return &idempotentCreatorImpl{
		commands: commands,
		queries:  bookingQueries,
		store:    store,
		ttl:      ttl,
	}
}

func (c *idempotentCreatorImpl) Create(ctx context.Context, actorID uuid.UUID, key string, p CreateBookingParams) (*CreateBookingResult, error) {
	if key == "" {
		return c.createNew(ctx, p)
	}

	scope := "booking:create:" + actorID.String()
	requestHash, err := calculateRequestHash(p)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	existing, claimed, err := c.store.Claim(ctx, scope, key, requestHash, c.ttl)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if !claimed {
		return c.replay(ctx, existing, requestHash)
	}

	// The claim bookkeeping must finish even if the client has gone away.
	bg := context.WithoutCancel(ctx)

	result, err := c.createNew(ctx, p)
	if err != nil {
		if rerr := c.store.Release(bg, scope, key); rerr != nil {
			slog.Warn("failed to release idempotency key", "key", key, "error", rerr.Error())
		}
		return nil, err
	}

	if err := c.store.Complete(bg, scope, key, requestHash, result.Booking.ID, c.ttl); err != nil {
		slog.Warn("failed to complete idempotency key", "key", key, "booking_id", result.Booking.ID, "error", err.Error())
	}
	return result, nil
}

func (c *idempotentCreatorImpl) createNew(ctx context.Context, p CreateBookingParams) (*CreateBookingResult, error) {
	b, err := c.commands.CreateBooking(ctx, p)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: queries.BookingViewFromDomain(b), Created: b}, nil
}

func (c *idempotentCreatorImpl) replay(ctx context.Context, rec *shared.IdempotencyRecord, requestHash string) (*CreateBookingResult, error) {
	if rec.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyMismatch
	}

	switch rec.Status {
	case shared.IdempotencyStatusCompleted:
		if rec.BookingID == nil {
			return nil, errs.Mark(errs.New("completed request missing booking ID"), ErrIdempotencyCheckFailed)
		}
		v, err := c.queries.GetByIDSystem(ctx, *rec.BookingID)
		if err != nil {
			return nil, err
		}
		return &CreateBookingResult{Booking: v, Replayed: true}, nil

	case shared.IdempotencyStatusProcessing:
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.Mark(errs.Newf("invalid idempotency key status %q", rec.Status), ErrIdempotencyCheckFailed)
	}
}

func calculateRequestHash(p CreateBookingParams) (string, error) {
	payload, err := json.Marshal(struct {
		ResourceID uuid.UUID `json:"resourceId"`
		SubjectID  uuid.UUID `json:"customerId"`
		ServiceID  uuid.UUID `json:"serviceId"`
		Range      string    `json:"range"`
		TotalPrice int64     `json:"totalPrice"`
		Notes      string    `json:"notes"`
	}{
		ResourceID: p.ResourceID,
		SubjectID:  p.SubjectID,
		ServiceID:  p.ServiceID,
		Range:      p.Range.String(),
		TotalPrice: p.TotalPrice,
		Notes:      p.Notes,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
