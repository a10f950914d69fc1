package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/V4Varunstar/aura-inventory-sub002/internal/jobs"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/ledger"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// LowStockReader computes low-stock rows for a company.
type LowStockReader interface {
	LowStock(ctx context.Context, companyID string) ([]ledger.LowStockRow, error)
}

// CompanyLister enumerates tenants with master data.
type CompanyLister interface {
	ListCompanyIDs(ctx context.Context) ([]string, error)
}

// LowStockScanJob logs and publishes positions at or below their threshold.
type LowStockScanJob struct {
	Reports   LowStockReader
	Companies CompanyLister
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewLowStockScanJob wires dependencies for the scan handler.
func NewLowStockScanJob(reports LowStockReader, companies CompanyLister, logger *slog.Logger, metrics *jobmetrics.Metrics) *LowStockScanJob {
	return &LowStockScanJob{
		Reports:   reports,
		Companies: companies,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes low-stock scan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Reports == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskLowStockScan)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	start := j.now()
	companies, err := resolveCompanies(ctx, j.Companies, payload.CompanyID)
	if err != nil {
		logger.Error("load companies", slog.Any("error", err))
		return err
	}

	alerts := 0
	for _, companyID := range companies {
		scopeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		rows, err := j.Reports.LowStock(scopeCtx, companyID)
		cancel()
		if err != nil {
			logger.Error("scan company", slog.String("company_id", companyID), slog.Any("error", err))
			return err
		}
		j.metrics().SetLowStock(companyID, len(rows))
		for _, row := range rows {
			logger.Warn("low stock",
				slog.String("company_id", companyID),
				slog.String("product_id", row.ProductID),
				slog.String("sku", row.SKU),
				slog.String("warehouse", row.WarehouseName),
				slog.Int64("current_stock", row.CurrentStock),
				slog.Int64("threshold", row.Threshold),
				slog.String("status", row.Status),
			)
		}
		alerts += len(rows)
	}

	logger.Info("completed low stock scan", slog.Int("companies", len(companies)), slog.Int("alerts", alerts), slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskLowStockScan))
}

func (j *LowStockScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *LowStockScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

func resolveCompanies(ctx context.Context, lister CompanyLister, only string) ([]string, error) {
	if only != "" {
		return []string{only}, nil
	}
	if lister == nil {
		return nil, errors.New("jobs: company lister not configured")
	}
	return lister.ListCompanyIDs(ctx)
}
