package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/V4Varunstar/aura-inventory-sub002/internal/jobs"
)

// DatasetWarmer preloads a company's report dataset.
type DatasetWarmer interface {
	Warm(ctx context.Context, companyID string) error
}

// CacheWarmupJob refreshes report caches after writes or on demand.
type CacheWarmupJob struct {
	Reports   DatasetWarmer
	Companies CompanyLister
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewCacheWarmupJob wires dependencies for the warmup handler.
func NewCacheWarmupJob(reports DatasetWarmer, companies CompanyLister, logger *slog.Logger, metrics *jobmetrics.Metrics) *CacheWarmupJob {
	return &CacheWarmupJob{Reports: reports, Companies: companies, Logger: logger, Metrics: metrics}
}

// Handle processes cache warmup tasks.
func (j *CacheWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Reports == nil {
		return errors.New("cache warmup: handler not configured")
	}
	var payload CacheWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	metrics := j.Metrics
	if metrics == nil {
		metrics = defaultJobMetrics
	}
	tracker := metrics.Track(TaskCacheWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := slog.Default()
	if j.Logger != nil {
		logger = j.Logger
	}
	logger = logger.With(slog.String("job", TaskCacheWarmup))

	companies, err := resolveCompanies(ctx, j.Companies, payload.CompanyID)
	if err != nil {
		logger.Error("load companies", slog.Any("error", err))
		return err
	}
	start := time.Now()
	for _, companyID := range companies {
		if err := j.Reports.Warm(ctx, companyID); err != nil {
			logger.Error("warm company", slog.String("company_id", companyID), slog.Any("error", err))
			return err
		}
	}
	logger.Debug("completed cache warmup", slog.Int("companies", len(companies)), slog.Duration("duration", time.Since(start)))
	return nil
}

// CacheBumper invalidates a company's report cache.
type CacheBumper interface {
	Invalidate(ctx context.Context, companyID string) error
}

// WarmupEnqueuer schedules a cache warmup.
type WarmupEnqueuer interface {
	EnqueueCacheWarmup(ctx context.Context, companyID string) error
}

// CacheRefresher invalidates the report cache after a write and schedules a
// background warmup so the next report read is served from Redis.
type CacheRefresher struct {
	Cache  CacheBumper
	Queue  WarmupEnqueuer
	Logger *slog.Logger
}

// Invalidate bumps the cache. Enqueue failures are logged, not returned.
func (r *CacheRefresher) Invalidate(ctx context.Context, companyID string) error {
	if err := r.Cache.Invalidate(ctx, companyID); err != nil {
		return err
	}
	if r.Queue == nil {
		return nil
	}
	if err := r.Queue.EnqueueCacheWarmup(ctx, companyID); err != nil && r.Logger != nil {
		r.Logger.Warn("enqueue cache warmup", slog.String("company_id", companyID), slog.Any("error", err))
	}
	return nil
}
