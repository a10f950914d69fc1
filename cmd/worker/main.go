package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/app"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
	jobmetrics "github.com/V4Varunstar/aura-inventory-sub002/internal/jobs"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/cache"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/db"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/reports"
	"github.com/V4Varunstar/aura-inventory-sub002/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	masterRepo := masterdata.NewRepository(pool)
	inventoryRepo := inventory.NewRepository(pool)
	reportService := reports.NewService(masterRepo, inventoryRepo, reports.NewCache(redisClient, cfg.ReportCacheTTL), nil, logger)
	metrics := jobmetrics.NewMetrics(nil)

	scanJob := jobs.NewLowStockScanJob(reportService, masterRepo, logger, metrics)
	warmupJob := jobs.NewCacheWarmupJob(reportService, masterRepo, logger, metrics)

	scanTask, err := jobs.NewLowStockScanTask("", time.Time{})
	if err != nil {
		logger.Error("build low stock task", slog.Any("error", err))
		os.Exit(1)
	}
	warmupTask, err := jobs.NewCacheWarmupTask("")
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLowStockScan, Handler: scanJob.Handle},
			{Type: jobs.TaskCacheWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LowStockScanCron, Task: scanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.CacheWarmupCron, Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	metricsServer := newMetricsServer(cfg.WorkerMetricsAddr)
	go func() {
		logger.Info("serving worker metrics", slog.String("addr", cfg.WorkerMetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker metrics server", slog.Any("error", err))
		}
	}()

	runErr := worker.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("worker metrics shutdown", slog.Any("error", err))
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("worker run", slog.Any("error", runErr))
		os.Exit(1)
	}
}

// newMetricsServer exposes job metrics, including the low-stock gauge, for scraping.
func newMetricsServer(addr string) *http.Server {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", jobmetrics.Handler(nil))
	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
