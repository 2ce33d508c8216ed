package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"citizensera.com/sera/internal/api"
	"citizensera.com/sera/internal/catalog"
	"citizensera.com/sera/internal/config"
	"citizensera.com/sera/internal/core"
	"citizensera.com/sera/internal/store"
	"citizensera.com/sera/internal/zlog"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := zlog.New(zlog.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if !cfg.EnvFileLoaded {
		logger.Info("No .env file found, using environment variables")
	}
	if cfg.LogLevel == "DEBUG" {
		logger.Debug("Service starting in DEBUG mode", zap.String("sim_mode", cfg.SimMode))
	}

	catalogStore, err := store.NewSQLiteStore(cfg.CatalogDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog store: %w", err)
	}
	defer catalogStore.Close()
	if err := catalogStore.LoadBenefits(ctx, catalog.Benefits()); err != nil {
		return fmt.Errorf("failed to load benefit catalog: %w", err)
	}

	sessions := core.NewSessionManager(sessionOptions(cfg, logger), cfg.SessionTTL)
	if err := sessions.StartSweeper(cfg.SessionSweep); err != nil {
		return err
	}

	apiHandler := api.NewAPIHandler(sessions, catalogStore, logger, cfg.AllowedOrigins)
	router := api.NewRouter(apiHandler, logger)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No WriteTimeout: event streams stay open for the life of a session.
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not listen on %s: %w", serverAddr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Shutdown does not track upgraded connections; closing the sessions
		// ends their event streams.
		sessErr := sessions.Shutdown(shutdownCtx)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return sessErr
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server exiting gracefully")
	return nil
}

func sessionOptions(cfg *config.Config, logger *zap.Logger) core.SessionOptions {
	return core.SessionOptions{
		Tuning:      cfg.Sim,
		Clock:       core.WallClock(),
		NewStrategy: strategyFactory(cfg.SimMode, cfg.SimSeed),
		Greet:       cfg.ChatGreeting,
		Logger:      logger,
	}
}

// strategyFactory gives every session its own strategy. With a fixed seed,
// session n is seeded with seed+n so runs are reproducible.
func strategyFactory(mode string, seed uint64) func() core.Strategy {
	if mode == config.SimModeDeterministic {
		return func() core.Strategy { return core.NewFixedStrategy(0) }
	}
	var n atomic.Uint64
	return func() core.Strategy {
		if seed == 0 {
			return core.NewRandomStrategy(0)
		}
		return core.NewRandomStrategy(seed + n.Add(1) - 1)
	}
}
