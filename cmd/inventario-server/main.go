// Package main is the entry point for the Inventario server.
// Inventario is a per-user inventory service with registration, login
// and product management, built to keep answering while its database
// is down.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/cache"
	memorycache "github.com/dmarrez/inventario/internal/cache/memory"
	rediscache "github.com/dmarrez/inventario/internal/cache/redis"
	"github.com/dmarrez/inventario/internal/config"
	"github.com/dmarrez/inventario/internal/continuity"
	"github.com/dmarrez/inventario/internal/handler"
	"github.com/dmarrez/inventario/internal/pkg/metrics"
	"github.com/dmarrez/inventario/internal/repository"
	"github.com/dmarrez/inventario/internal/repository/postgres"
	"github.com/dmarrez/inventario/internal/repository/sqlite"
	"github.com/dmarrez/inventario/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger := newLogger(cfg.Logging)

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Str("driver", cfg.Database.Driver).
		Bool("continuity", cfg.Continuity.Enabled).
		Msg("starting Inventario server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database. An unreachable store is not fatal: the continuity layer
	// keeps the API answering until it comes back.
	repos, db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		logger.Warn().Err(err).Msg("schema migration failed, continuing; store operations may degrade")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Listing cache: Redis when configured, in-process otherwise.
	listingCache := newCache(ctx, cfg, logger)
	defer listingCache.Close()

	controller := continuity.New(continuity.Config{
		Users:    repos.User,
		Products: repos.Product,
		Enabled:  cfg.Continuity.Enabled,
		Logger:   logger,
		Metrics:  m,
	})

	accountService := service.NewAccountService(controller, logger)
	inventoryService := service.NewInventoryService(controller, listingCache, cfg.Redis.ListingTTL, logger)

	router := handler.NewRouter(handler.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountService, logger),
		InventoryHandler: handler.NewInventoryHandler(inventoryService, logger),
		DB:               db,
		StaticDir:        cfg.Server.StaticDir,
		Metrics:          m,
		Logger:           logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Metrics.Port)
		metricsSrv = metrics.NewServer(m, addr, cfg.Metrics.Path, logger)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown failed")
		}
	}

	logger.Info().Msg("server stopped")
}

// newLogger builds the root logger from the logging configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// openDatabase connects the configured driver and assembles the repositories.
func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*repository.Repositories, repository.DatabaseHealth, error) {
	if cfg.Database.IsEmbedded() {
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:        cfg.Database.Path,
			JournalMode: cfg.Database.JournalMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return &repository.Repositories{
			User:    sqlite.NewUserRepository(db),
			Product: sqlite.NewProductRepository(db),
		}, db, nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	return &repository.Repositories{
		User:    postgres.NewUserRepository(db),
		Product: postgres.NewProductRepository(db),
	}, db, nil
}

// migrate applies the schema for the configured driver.
func migrate(ctx context.Context, db repository.DatabaseHealth) error {
	switch d := db.(type) {
	case *sqlite.DB:
		return d.Migrate(ctx)
	case *postgres.DB:
		return d.Migrate(ctx)
	default:
		return nil
	}
}

// newCache picks the configured cache backend. Redis connection failures
// fall back to the in-process cache rather than failing startup.
func newCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) cache.Cache {
	if !cfg.Redis.Enabled {
		return memorycache.NewCache()
	}

	c, err := rediscache.NewCache(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, using in-process listing cache")
		return memorycache.NewCache()
	}
	return c
}
