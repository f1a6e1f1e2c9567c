package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Radz112/bonding-curve-exit-badge/internal/badge"
	"github.com/Radz112/bonding-curve-exit-badge/internal/classify"
	"github.com/Radz112/bonding-curve-exit-badge/internal/config"
	"github.com/Radz112/bonding-curve-exit-badge/internal/helius"
	"github.com/Radz112/bonding-curve-exit-badge/internal/registry"
	"github.com/Radz112/bonding-curve-exit-badge/internal/scan"
	"github.com/Radz112/bonding-curve-exit-badge/internal/server"
	"github.com/Radz112/bonding-curve-exit-badge/internal/service"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage/clickhouse"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage/memory"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage/migrations"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage/postgres"
	redisstore "github.com/Radz112/bonding-curve-exit-badge/internal/storage/redis"
	"github.com/Radz112/bonding-curve-exit-badge/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting curve-exit badge service")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	cache, closeCache, err := buildCache(ctx, cfg, log)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Str("backend", cfg.CacheBackend).Msg("Failed to initialize result cache")
	}
	defer closeCache()

	audit, closeAudit, err := buildAudit(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize audit log")
	}
	defer closeAudit()

	heliusOpts := []helius.ClientOption{}
	if cfg.HeliusRESTURL != "" {
		heliusOpts = append(heliusOpts, helius.WithRESTBaseURL(cfg.HeliusRESTURL))
	}
	if cfg.HeliusRPCURL != "" {
		heliusOpts = append(heliusOpts, helius.WithRPCBaseURL(cfg.HeliusRPCURL))
	}
	client := helius.NewClient(cfg.HeliusAPIKey, heliusOpts...)

	reg := registry.New()
	scanner := scan.New(scan.Options{
		Source:   client,
		Registry: reg,
		MaxPages: cfg.MaxPages,
		Log:      log,
	})
	builder := classify.NewBuilder(reg, client, log)

	renderer, err := badge.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize badge renderer")
	}

	svc := service.New(service.Options{
		Registry: reg,
		Scanner:  scanner,
		Builder:  builder,
		Renderer: renderer,
		Cache:    cache,
		Audit:    audit,
		Timeout:  time.Duration(cfg.RequestTimeoutMs) * time.Millisecond,
		Log:      log,
	})

	srv := server.New(server.Config{
		Port:         cfg.Port,
		Service:      svc,
		PayToAddress: cfg.PayToAddress,
		Log:          log,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().
		Int("port", cfg.Port).
		Str("cache_backend", cfg.CacheBackend).
		Bool("audit", audit != nil).
		Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// buildCache constructs the configured result-cache backend and returns
// a close function for any underlying connection.
func buildCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage.ResultCache, func(), error) {
	switch cfg.CacheBackend {
	case config.BackendMemory:
		return memory.NewResultCache(cfg.CacheMaxKeys), func() {}, nil

	case config.BackendRedis:
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisstore.NewResultCache(rdb, int64(cfg.CacheMaxKeys)), func() { _ = rdb.Close() }, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		log.Info().Msg("Postgres migrations applied")
		return postgres.NewResultCache(pool, int64(cfg.CacheMaxKeys)), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// buildAudit wires the optional ClickHouse audit log. Returns a nil
// AuditLog when CLICKHOUSE_DSN is unset.
func buildAudit(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage.AuditLog, func(), error) {
	if cfg.ClickhouseDSN == "" {
		return nil, func() {}, nil
	}

	conn, err := migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}
	log.Info().Msg("ClickHouse migrations applied")

	return clickhouse.NewAuditLog(conn), func() { _ = conn.Close() }, nil
}
