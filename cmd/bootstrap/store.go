package bootstrap

import (
	"salon-booking/cmd/bootstrap/components"
	"salon-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// StoreModule picks the reservation store backend. The memory store keeps
// everything in-process and needs no database.
func StoreModule(cfg config.Config) fx.Option {
	if cfg.Booking.Store == config.StoreDriverMemory {
		return components.MemoryModule
	}
	return fx.Options(
		DBModule,
		components.PersistenceModule,
	)
}
