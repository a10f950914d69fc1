package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/app"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/observability"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/cache"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/db"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/reports"
	reporthttp "github.com/V4Varunstar/aura-inventory-sub002/internal/reports/http"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
	"github.com/V4Varunstar/aura-inventory-sub002/jobs"
)

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report cache disabled", slog.Any("error", err))
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	masterRepo := masterdata.NewRepository(dbpool)
	inventoryRepo := inventory.NewRepository(dbpool)
	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := reports.NewService(masterRepo, inventoryRepo, reportCache, metrics, logger)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	refresher := &jobs.CacheRefresher{Cache: reportService, Queue: jobClient, Logger: logger}

	auditLogger := shared.NewAuditLogger(dbpool)
	inventoryService := inventory.NewService(inventoryRepo, auditLogger, refresher, logger)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		InventoryHandler:  inventory.NewHandler(logger, inventoryService),
		MasterDataHandler: masterdata.NewHandler(logger, masterRepo),
		ReportHandler: reporthttp.NewHandler(logger, reportService, reporthttp.Options{
			Location:    cfg.Location(),
			ExportLimit: cfg.ReportRateLimit,
		}),
		JobHandler: jobs.NewHandler(inspector, logger),
		Metrics:    metrics,
		Checks: map[string]app.Pinger{
			"postgres": dbpool,
			"redis":    redisPinger{client: redisClient},
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
