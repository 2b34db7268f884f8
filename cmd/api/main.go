package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"tripdesk/internal/api"
	"tripdesk/internal/auth"
	"tripdesk/internal/config"
	"tripdesk/internal/database"
	"tripdesk/internal/domain"
	"tripdesk/internal/events"
	"tripdesk/internal/export"
	"tripdesk/internal/logging"
	"tripdesk/internal/metrics"
	"tripdesk/internal/repository"
	"tripdesk/internal/seed"
	"tripdesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Seed.Hotels {
		if err := seed.Hotels(ctx, db, logger); err != nil {
			return err
		}
	}

	statsCache := initStatsCache(ctx, cfg, logger)

	eventBus := events.NewEventBus()
	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		metrics.ObserveBus(eventBus)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHrs)*time.Hour)

	server := api.NewServer(api.Deps{
		Config:       cfg,
		Logger:       logger,
		Users:        service.NewUserService(db, logger),
		Companies:    service.NewCompanyService(db, logger),
		Hotels:       service.NewHotelService(db, logger),
		Reservations: service.NewReservationService(db, eventBus, logger),
		Dashboard:    service.NewDashboardService(db, statsCache, logger),
		Tokens:       tokens,
		Exporter:     export.NewExporter(cfg.Exports.Path, logger),
		Pinger:       db,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSecs)*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, &logger, closer, nil
}

// initStatsCache connects Redis when enabled. A failed ping downgrades to
// no caching rather than refusing to start.
func initStatsCache(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.StatsCache {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := repository.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("redis unavailable, stats caching disabled")
		_ = client.Close()
		return nil
	}

	logger.Info().Str("address", cfg.Redis.Address).Msg("redis connected")
	return repository.NewRedisStatsCache(client, time.Duration(cfg.Redis.TTLSecs)*time.Second)
}
