package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"salon-booking/internal/infra/idempotency"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/config"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var IdempotencyModule = fx.Module("idempotency",
	fx.Provide(
		NewIdempotencyStore,
	),
)

func NewIdempotencyStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (shared.IdempotencyStore, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, idempotency keys are kept in process memory")
		return idempotency.NewMemoryStore(clk), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis")
	}
	logger.Info("idempotency keys stored in redis", "addr", cfg.Redis.Addr)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return idempotency.NewRedisStore(client, clk), nil
}
