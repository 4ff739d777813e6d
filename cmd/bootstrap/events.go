package bootstrap

import (
	"context"
	"log/slog"

	"salon-booking/internal/infra/events"
	"salon-booking/internal/pkg/config"
	"salon-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	if cfg.AMQP.URL == "" {
		logger.Info("AMQP_URL not set, booking events are only logged")
		return events.NewLogPublisher(logger), nil
	}

	pub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing booking events to AMQP", "exchange", cfg.AMQP.Exchange)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
