package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME, default=sweetshop"`
	ServerPort  int    `env:"SERVER_PORT, default=8080"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`

	DBDriver    string `env:"DB_DRIVER, default=sqlite"`
	DatabaseURL string `env:"DATABASE_URL, default=sweetshop.db"`

	JWTSecret    string        `env:"JWT_SECRET, required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN, default=24h"`

	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC, default=sweet_events"`

	StaticDir        string   `env:"STATIC_DIR"`
	SeedRouteEnabled bool     `env:"SEED_ROUTE_ENABLED, default=false"`
	CORSOrigins      []string `env:"CORS_ORIGINS, default=*"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("notice: %s not loaded: %v. Using system environment variables", envFile, err)
		}
	}

	return Process(ctx, envconfig.OsLookuper())
}

func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
