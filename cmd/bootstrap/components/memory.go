package components

import (
	"salon-booking/internal/infra/memstore"
	"salon-booking/internal/usecase/queries"
	"salon-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

// MemoryModule keeps bookings in process. Used for local runs and tests.
var MemoryModule = fx.Module("memory",
	fx.Provide(
		memstore.NewStore,
		fx.Annotate(
			memstore.NewUnitOfWork,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			memstore.NewReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)
