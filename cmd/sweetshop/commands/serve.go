package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/sweet_shop/internal/db"
	"github.com/Skotchmaster/sweet_shop/internal/events"
	"github.com/Skotchmaster/sweet_shop/internal/httpserver"
	"github.com/Skotchmaster/sweet_shop/internal/repo"
	"github.com/Skotchmaster/sweet_shop/internal/service"
	"github.com/Skotchmaster/sweet_shop/internal/tokens"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, logger, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(store); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}()

	if err := db.Migrate(ctx, store); err != nil {
		return err
	}

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("publisher_close_error", "error", err)
		}
	}()

	r := repo.New(store)
	issuer := tokens.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTExpiresIn)

	deps := &httpserver.Deps{
		DB:           store,
		AuthHandler:  &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: issuer}},
		SweetHandler: &httpserver.SweetHTTP{Svc: service.NewCatalogService(r, publisher)},
		Tokens:       issuer,
	}
	if cfg.SeedRouteEnabled {
		deps.SeedHandler = &httpserver.SeedHTTP{Svc: &service.SeedService{Repo: r}}
	}

	e := httpserver.NewEcho(httpserver.Options{
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
	})
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started", "addr", srv.Addr, "driver", cfg.DBDriver, "events", len(cfg.KafkaBrokers) > 0)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-stop:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	logger.Info("server_stopped")
	return nil
}
