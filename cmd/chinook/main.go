package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"chinook/internal/config"
	"chinook/internal/database"
	"chinook/internal/http/middleware"
	"chinook/internal/httpapi"
	"chinook/internal/logging"
	"chinook/internal/store"
)

const (
	readyPollInterval = 2 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialect, err := store.DialectForDriver(cfg.Database.Driver)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.URL, database.PoolConfig{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.WaitReady(ctx, db, cfg.Database.WaitTimeout, readyPollInterval); err != nil {
		return err
	}

	api := httpapi.New(store.New(db, dialect))
	handler := middleware.RequestLogging()(
		middleware.Recovery()(
			middleware.CORS(cfg.CORS.AllowedOrigins)(
				middleware.RateLimit(cfg.Server.RateLimitPerMinute)(api.Routes()),
			),
		),
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("driver", cfg.Database.Driver).
			Msg("catalog API listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
