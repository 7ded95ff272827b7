// Command server exposes the history dispatcher over HTTP. Requests are
// adapted into gateway-shaped events, so the same dispatch pipeline serves
// HTTP and Lambda invocations.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/appconfigdata"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/jackc/pgx/v5/pgxpool"

	"chronicle/internal/history/configsource/appconfig"
	"chronicle/internal/history/configsource/redisconfig"
	"chronicle/internal/history/configsource/static"
	"chronicle/internal/history/metrics"
	"chronicle/internal/history/ports"
	"chronicle/internal/history/service"
	"chronicle/internal/history/store/cloudwatch"
	"chronicle/internal/history/store/memory"
	"chronicle/internal/history/store/postgres"
	"chronicle/internal/platform/config"
	"chronicle/internal/platform/httpserver"
	"chronicle/internal/platform/logger"
	platformredis "chronicle/internal/platform/redis"
	httptransport "chronicle/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store setup failed", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	provider, err := buildConfigProvider(ctx, cfg)
	if err != nil {
		log.Error("config source setup failed", "backend", cfg.ConfigBackend, "error", err)
		os.Exit(1)
	}

	svc, err := service.New(provider, store,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithPollInterval(cfg.PollInterval),
		service.WithSearchTimeout(cfg.SearchTimeout),
	)
	if err != nil {
		log.Error("service setup failed", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(svc, log)
	router := httptransport.NewRouter(handler)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting chronicle",
		"addr", cfg.Addr,
		"store", cfg.StoreBackend,
		"config_source", cfg.ConfigBackend,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func buildStore(ctx context.Context, cfg config.Server) (ports.LogStore, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := postgres.New(pool)
		if err := store.Init(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreCloudWatch:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return cloudwatch.New(cloudwatchlogs.NewFromConfig(awsCfg)), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func buildConfigProvider(ctx context.Context, cfg config.Server) (ports.ConfigProvider, error) {
	switch cfg.ConfigBackend {
	case config.ConfigStatic:
		return static.New(cfg.StaticTarget), nil
	case config.ConfigRedis:
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("redis config source selected but CHRONICLE_REDIS_URL is empty")
		}
		return redisconfig.New(client.Client, cfg.RedisConfigKey), nil
	case config.ConfigAppConfig:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return appconfig.New(appconfigdata.NewFromConfig(awsCfg), appconfig.Identifiers{
			Application: cfg.AppConfig.Application,
			Environment: cfg.AppConfig.Environment,
			Profile:     cfg.AppConfig.Profile,
		}), nil
	default:
		return nil, fmt.Errorf("unknown config source %q", cfg.ConfigBackend)
	}
}
