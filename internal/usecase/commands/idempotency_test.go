//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra/idempotency"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"
	"salon-booking/internal/usecase/shared"
	"salon-booking/tests/common/builder"
	commandsmock "salon-booking/tests/mock/commands"
	queriesmock "salon-booking/tests/mock/queries"
	sharedmock "salon-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const idemTTL = time.Hour

type creatorFixture struct {
	cmds    *commandsmock.MockBookingCommands
	queries *queriesmock.MockBookingQueries
	store   *idempotency.MemoryStore
	creator commands.IdempotentBookingCreator
}

func newCreatorFixture(t *testing.T) *creatorFixture {
	ctrl := gomock.NewController(t)
	f := &creatorFixture{
		cmds:    commandsmock.NewMockBookingCommands(ctrl),
		queries: queriesmock.NewMockBookingQueries(ctrl),
		store:   idempotency.NewMemoryStore(clock.NewMockClock(time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC))),
	}
	f.creator = commands.NewIdempotentBookingCreator(f.cmds, f.queries, f.store, idemTTL)
	return f
}

func TestIdempotentBookingCreator(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()
	b := builder.NewBookingBuilder()
	params := b.BuildCreateParams()
	created := b.BuildReconstructed()

	t.Run("no key always creates", func(t *testing.T) {
		f := newCreatorFixture(t)
		f.cmds.EXPECT().CreateBooking(ctx, params).Return(created, nil).Times(2)

		for range 2 {
			res, err := f.creator.Create(ctx, actor, "", params)
			require.NoError(t, err)
			assert.False(t, res.Replayed)
			assert.Same(t, created, res.Created)
			assert.Equal(t, created.ID(), res.Booking.ID)
		}
	})

	t.Run("retry with the same key replays the booking", func(t *testing.T) {
		f := newCreatorFixture(t)
		f.cmds.EXPECT().CreateBooking(gomock.Any(), params).Return(created, nil).Times(1)
		f.queries.EXPECT().GetByIDSystem(gomock.Any(), created.ID()).
			Return(queries.BookingViewFromDomain(created), nil).Times(1)

		first, err := f.creator.Create(ctx, actor, "key-1", params)
		require.NoError(t, err)
		assert.False(t, first.Replayed)

		second, err := f.creator.Create(ctx, actor, "key-1", params)
		require.NoError(t, err)
		assert.True(t, second.Replayed)
		assert.Nil(t, second.Created)
		assert.Equal(t, first.Booking, second.Booking)
	})

	t.Run("same key from another customer is independent", func(t *testing.T) {
		f := newCreatorFixture(t)
		f.cmds.EXPECT().CreateBooking(gomock.Any(), params).Return(created, nil).Times(2)

		_, err := f.creator.Create(ctx, actor, "key-1", params)
		require.NoError(t, err)
		res, err := f.creator.Create(ctx, uuid.New(), "key-1", params)
		require.NoError(t, err)
		assert.False(t, res.Replayed)
	})

	t.Run("same key with a different body is rejected", func(t *testing.T) {
		f := newCreatorFixture(t)
		f.cmds.EXPECT().CreateBooking(gomock.Any(), params).Return(created, nil).Times(1)

		_, err := f.creator.Create(ctx, actor, "key-1", params)
		require.NoError(t, err)

		other := params
		other.Notes = "something else"
		_, err = f.creator.Create(ctx, actor, "key-1", other)
		require.ErrorIs(t, err, commands.ErrIdempotencyKeyMismatch)
	})

	t.Run("failed create releases the key", func(t *testing.T) {
		f := newCreatorFixture(t)
		conflict := &booking.ConflictError{ConflictingID: uuid.New()}
		gomock.InOrder(
			f.cmds.EXPECT().CreateBooking(gomock.Any(), params).Return(nil, conflict),
			f.cmds.EXPECT().CreateBooking(gomock.Any(), params).Return(created, nil),
		)

		_, err := f.creator.Create(ctx, actor, "key-1", params)
		require.ErrorIs(t, err, booking.ErrSlotConflict)

		res, err := f.creator.Create(ctx, actor, "key-1", params)
		require.NoError(t, err)
		assert.False(t, res.Replayed)
	})
}

func TestIdempotentBookingCreator_StoreStates(t *testing.T) {
	ctx := context.Background()
	params := builder.NewBookingBuilder().BuildCreateParams()

	setup := func(t *testing.T) (*sharedmock.MockIdempotencyStore, commands.IdempotentBookingCreator) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockIdempotencyStore(ctrl)
		creator := commands.NewIdempotentBookingCreator(
			commandsmock.NewMockBookingCommands(ctrl),
			queriesmock.NewMockBookingQueries(ctrl),
			store,
			idemTTL,
		)
		return store, creator
	}

	t.Run("processing key is in progress", func(t *testing.T) {
		store, creator := setup(t)
		store.EXPECT().Claim(gomock.Any(), gomock.Any(), "key-1", gomock.Any(), idemTTL).DoAndReturn(
			func(_ context.Context, _, key, hash string, _ time.Duration) (*shared.IdempotencyRecord, bool, error) {
				return &shared.IdempotencyRecord{Key: key, Status: shared.IdempotencyStatusProcessing, RequestHash: hash}, false, nil
			})

		_, err := creator.Create(ctx, uuid.New(), "key-1", params)
		require.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
	})

	t.Run("completed record without booking id", func(t *testing.T) {
		store, creator := setup(t)
		store.EXPECT().Claim(gomock.Any(), gomock.Any(), "key-1", gomock.Any(), idemTTL).DoAndReturn(
			func(_ context.Context, _, key, hash string, _ time.Duration) (*shared.IdempotencyRecord, bool, error) {
				return &shared.IdempotencyRecord{Key: key, Status: shared.IdempotencyStatusCompleted, RequestHash: hash}, false, nil
			})

		_, err := creator.Create(ctx, uuid.New(), "key-1", params)
		require.ErrorIs(t, err, commands.ErrIdempotencyCheckFailed)
	})

	t.Run("store failure", func(t *testing.T) {
		store, creator := setup(t)
		store.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, false, errors.New("redis: connection refused"))

		_, err := creator.Create(ctx, uuid.New(), "key-1", params)
		require.ErrorIs(t, err, commands.ErrIdempotencyCheckFailed)
	})

	t.Run("scope is per customer", func(t *testing.T) {
		store, creator := setup(t)
		actor := uuid.New()
		store.EXPECT().Claim(gomock.Any(), "booking:create:"+actor.String(), "key-1", gomock.Any(), idemTTL).
			Return(nil, false, errors.New("stop here"))

		_, err := creator.Create(ctx, actor, "key-1", params)
		require.Error(t, err)
	})
}
