//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/infra"
	"salon-booking/internal/infra/repository"
	sqlc "salon-booking/internal/infra/sqlc/generated"
	"salon-booking/internal/pkg/pgconv"
	"salon-booking/tests/common/builder"
	repositorymock "salon-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRepo(t *testing.T) (*repositorymock.MockBookingWriteQueries, *repository.BookingRepository) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockBookingWriteQueries(ctrl)
	return q, repository.NewBookingRepository(q, nil)
}

func TestBookingRepository_Insert(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder().BuildReconstructed()

	tests := []struct {
		name     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "overlap", mockErr: &pgconn.PgError{Code: pgconv.PgErrExclusionViolation}, wantKind: infra.KindExclusionViolated},
		{name: "duplicate", mockErr: &pgconn.PgError{Code: pgconv.PgErrUniqueViolation}, wantKind: infra.KindDuplicateKey},
		{name: "connection", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
		{name: "canceled", mockErr: context.Canceled, wantKind: infra.KindCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, repo := newRepo(t)
			var row sqlc.Bookings
			if tt.mockErr == nil {
				row = builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) { bb.ID = b.ID() }).BuildInfra()
			}
			q.EXPECT().InsertBooking(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ sqlc.DBTX, arg sqlc.InsertBookingParams) (sqlc.Bookings, error) {
					assert.Equal(t, b.ID(), arg.ID)
					assert.Equal(t, "PENDING", arg.Status)
					assert.Equal(t, int64(80000), arg.TotalPrice)
					return row, tt.mockErr
				})

			got, err := repo.Insert(ctx, b)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID(), got.ID())
			assert.Equal(t, b.TimeRange().String(), got.TimeRange().String())
		})
	}
}

func TestBookingRepository_FindByIDForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		q, repo := newRepo(t)
		id := uuid.New()
		q.EXPECT().GetBookingByIDForUpdate(ctx, gomock.Any(), id).Return(sqlc.Bookings{}, pgx.ErrNoRows)

		_, err := repo.FindByIDForUpdate(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("corrupt row", func(t *testing.T) {
		q, repo := newRepo(t)
		row := builder.NewBookingBuilder().BuildInfra()
		row.StartTime = pgtype.Time{}
		q.EXPECT().GetBookingByIDForUpdate(ctx, gomock.Any(), row.ID).Return(row, nil)

		_, err := repo.FindByIDForUpdate(ctx, row.ID)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("unknown status", func(t *testing.T) {
		q, repo := newRepo(t)
		row := builder.NewBookingBuilder().BuildInfra()
		row.Status = "ARCHIVED"
		q.EXPECT().GetBookingByIDForUpdate(ctx, gomock.Any(), row.ID).Return(row, nil)

		_, err := repo.FindByIDForUpdate(ctx, row.ID)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestBookingRepository_FindActiveByResourceAndDate(t *testing.T) {
	ctx := context.Background()
	q, repo := newRepo(t)
	resource := uuid.New()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rows := []sqlc.Bookings{
		builder.NewBookingBuilder().WithResource(resource).WithSlot("2024-01-15", "10:00", "11:00").BuildInfra(),
		builder.NewBookingBuilder().WithResource(resource).WithStatus(booking.StatusConfirmed).BuildInfra(),
	}
	q.EXPECT().ListActiveBookingsByResourceAndDate(ctx, gomock.Any(), sqlc.ListActiveBookingsByResourceAndDateParams{
		ResourceID:  resource,
		BookingDate: pgconv.DateToPgtype(date),
	}).Return(rows, nil)

	got, err := repo.FindActiveByResourceAndDate(ctx, resource, date)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, booking.StatusConfirmed, got[1].Status())
}

func TestBookingRepository_Updates(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 1, 11, 3, 0, 0, 0, time.UTC)
	bb := builder.NewBookingBuilder()

	t.Run("status", func(t *testing.T) {
		q, repo := newRepo(t)
		row := bb.WithStatus(booking.StatusConfirmed).BuildInfra()
		q.EXPECT().UpdateBookingStatus(ctx, gomock.Any(), sqlc.UpdateBookingStatusParams{
			ID:        row.ID,
			Status:    "CONFIRMED",
			UpdatedAt: pgconv.TimeToPgtype(at),
		}).Return(row, nil)

		got, err := repo.UpdateStatus(ctx, row.ID, booking.StatusConfirmed, at)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, got.Status())
	})

	t.Run("range overlap", func(t *testing.T) {
		q, repo := newRepo(t)
		tr := bb.BuildRange()
		q.EXPECT().UpdateBookingRange(ctx, gomock.Any(), gomock.Any()).
			Return(sqlc.Bookings{}, &pgconn.PgError{Code: pgconv.PgErrExclusionViolation})

		_, err := repo.UpdateRange(ctx, bb.ID, tr, at)
		assert.True(t, infra.IsKind(err, infra.KindExclusionViolated))
	})

	t.Run("empty notes are stored as NULL", func(t *testing.T) {
		q, repo := newRepo(t)
		row := bb.WithNotes("").BuildInfra()
		q.EXPECT().UpdateBookingNotes(ctx, gomock.Any(), sqlc.UpdateBookingNotesParams{
			ID:        row.ID,
			Notes:     pgtype.Text{},
			UpdatedAt: pgconv.TimeToPgtype(at),
		}).Return(row, nil)

		got, err := repo.UpdateNotes(ctx, row.ID, "", at)
		require.NoError(t, err)
		assert.True(t, got.Notes().IsEmpty())
	})
}
