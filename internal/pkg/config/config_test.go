//go:build unit

package config_test

import (
	"testing"
	"time"

	"salon-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_USER", "salon")
	t.Setenv("DB_NAME", "salon")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, config.StoreDriverPostgres, cfg.Booking.Store)
	assert.Equal(t, "Asia/Bangkok", cfg.Booking.TimeZone)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "salon.bookings", cfg.AMQP.Exchange)
	assert.Contains(t, cfg.CORS.AllowHeaders, "Idempotency-Key")
	assert.Equal(t, "postgres://salon:@localhost:5432/salon?sslmode=disable&timezone=UTC", cfg.DB.BuildDSN())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store", env: map[string]string{"BOOKING_STORE": "mongo"}},
		{name: "postgres without db name", env: map[string]string{"DB_NAME": ""}},
		{name: "zero ttl", env: map[string]string{"IDEMPOTENCY_TTL": "0s"}},
		{name: "bad duration", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MemoryStoreNeedsNoDB(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("BOOKING_STORE", config.StoreDriverMemory)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverMemory, cfg.Booking.Store)
}

func TestNewTestConfig(t *testing.T) {
	cfg := config.NewTestConfig()
	assert.NoError(t, cfg.Validate())
}
