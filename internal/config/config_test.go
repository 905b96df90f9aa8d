package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "sweetshop", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "sweetshop.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "sweet_events", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.SeedRouteEnabled)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestProcess_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "secret",
		"SERVER_PORT":        "9000",
		"DB_DRIVER":          "postgres",
		"DATABASE_URL":       "postgres://u:p@localhost:5432/sweets",
		"JWT_EXPIRES_IN":     "1h",
		"KAFKA_BROKERS":      "k1:9092,k2:9092",
		"SEED_ROUTE_ENABLED": "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.SeedRouteEnabled)
}

func TestProcess_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET": "s", "DB_DRIVER": "mysql"}},
		{name: "non positive ttl", env: map[string]string{"JWT_SECRET": "s", "JWT_EXPIRES_IN": "0s"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Process(context.Background(), envconfig.MapLookuper(tt.env))
			require.Error(t, err)
		})
	}
}
