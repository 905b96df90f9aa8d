package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/sweet_shop/internal/config"
	"github.com/Skotchmaster/sweet_shop/internal/db"
	"github.com/Skotchmaster/sweet_shop/internal/logging"
)

var (
	// Global flags
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "sweetshop",
	Short: "Sweet Shop inventory API",
	Long: `Sweet Shop serves a small confectionery catalog over HTTP with
bearer-token authentication and role-gated stock management.

Commands:
  serve    - Run the HTTP API
  migrate  - Create or update the database schema
  seed     - Insert demo accounts and sample sweets`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
}

// bootstrap loads configuration, installs the default logger and opens the store.
func bootstrap(ctx context.Context) (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	store, err := db.Open(openCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, store, nil
}
