package bootstrap

import (
	"salon-booking/cmd/bootstrap/components"
	"salon-booking/internal/pkg/config"

	"go.uber.org/fx"
)

func Module(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		JWTModule,
		StoreModule(cfg),
		EventsModule,
		IdempotencyModule,
		components.UseCaseModule,
		components.HandlerModule,
	)
}
