package bootstrap

import (
	"salon-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies a configuration loaded before the graph is built,
// because the store choice decides which modules are included.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
