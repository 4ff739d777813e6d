package components

import (
	"time"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/config"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"
	"salon-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewLinearConflictChecker,
		fx.As(new(booking.ConflictChecker)),
	),
	NewBusinessLocation,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		NewIdempotentBookingCreator,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBusinessLocation(cfg config.Config) (*time.Location, error) {
	loc, err := clock.LoadLocation(cfg.Booking.TimeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid BOOKING_TIMEZONE %q", cfg.Booking.TimeZone)
	}
	return loc, nil
}

func NewIdempotentBookingCreator(
	cfg config.Config,
	cmds commands.BookingCommands,
	q queries.BookingQueries,
	store shared.IdempotencyStore,
) commands.IdempotentBookingCreator {
	return commands.NewIdempotentBookingCreator(cmds, q, store, cfg.Redis.IdempotencyTTL)
}
