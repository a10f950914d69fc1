package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan scans stock positions for items at or below their threshold.
	TaskLowStockScan = "report:low_stock_scan"
	// TaskCacheWarmup loads a company's report dataset into the cache.
	TaskCacheWarmup = "report:cache_warmup"
)

// LowStockScanPayload selects the companies to scan; empty means all.
type LowStockScanPayload struct {
	CompanyID    string    `json:"company_id,omitempty"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// CacheWarmupPayload selects the companies to warm; empty means all.
type CacheWarmupPayload struct {
	CompanyID string `json:"company_id,omitempty"`
}

// NewLowStockScanTask constructs an Asynq task for the low-stock scan.
func NewLowStockScanTask(companyID string, at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(LowStockScanPayload{CompanyID: companyID, ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, body, asynq.Queue(QueueDefault)), nil
}

// NewCacheWarmupTask constructs an Asynq task for report cache warmup.
func NewCacheWarmupTask(companyID string) (*asynq.Task, error) {
	body, err := json.Marshal(CacheWarmupPayload{CompanyID: companyID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCacheWarmup, body, asynq.Queue(QueueDefault)), nil
}
