package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/V4Varunstar/aura-inventory-sub002/internal/jobs"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/ledger"
)

type stubReports struct {
	rows   map[string][]ledger.LowStockRow
	warmed []string
	err    error
}

func (s *stubReports) LowStock(ctx context.Context, companyID string) ([]ledger.LowStockRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[companyID], nil
}

func (s *stubReports) Warm(ctx context.Context, companyID string) error {
	s.warmed = append(s.warmed, companyID)
	return s.err
}

type stubCompanies []string

func (s stubCompanies) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return s, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
}

func TestLowStockScanAllCompanies(t *testing.T) {
	reports := &stubReports{rows: map[string][]ledger.LowStockRow{
		"co-1": {
			{StockPosition: ledger.StockPosition{ProductID: "P2", CurrentStock: 0}, Status: ledger.StatusOutOfStock},
			{StockPosition: ledger.StockPosition{ProductID: "P1", CurrentStock: 30}, Threshold: 40, Status: ledger.StatusLowStock},
		},
	}}
	job := NewLowStockScanJob(reports, stubCompanies{"co-1", "co-2"}, discardLogger(), jobmetrics.NewMetrics(prometheus.NewRegistry()))

	task, err := NewLowStockScanTask("", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, TaskLowStockScan, task.Type())
	require.NoError(t, job.Handle(context.Background(), task))
}

func TestLowStockScanSingleCompanySkipsLister(t *testing.T) {
	reports := &stubReports{}
	job := NewLowStockScanJob(reports, nil, discardLogger(), jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task, err := NewLowStockScanTask("co-9", time.Now())
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
}

func TestLowStockScanPropagatesErrors(t *testing.T) {
	reports := &stubReports{err: errors.New("db down")}
	job := NewLowStockScanJob(reports, stubCompanies{"co-1"}, discardLogger(), jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task, err := NewLowStockScanTask("", time.Now())
	require.NoError(t, err)
	require.ErrorContains(t, job.Handle(context.Background(), task), "db down")
}

func TestHandlersSkipRetryOnBadPayload(t *testing.T) {
	bad := asynq.NewTask(TaskLowStockScan, []byte("{"))
	scan := NewLowStockScanJob(&stubReports{}, nil, discardLogger(), nil)
	require.ErrorIs(t, scan.Handle(context.Background(), bad), asynq.SkipRetry)

	warm := NewCacheWarmupJob(&stubReports{}, nil, discardLogger(), nil)
	require.ErrorIs(t, warm.Handle(context.Background(), asynq.NewTask(TaskCacheWarmup, []byte("nope"))), asynq.SkipRetry)
}

func TestCacheWarmupWarmsEveryCompany(t *testing.T) {
	reports := &stubReports{}
	job := NewCacheWarmupJob(reports, stubCompanies{"co-1", "co-2"}, discardLogger(), jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task, err := NewCacheWarmupTask("")
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, []string{"co-1", "co-2"}, reports.warmed)

	var payload CacheWarmupPayload
	task, err = NewCacheWarmupTask("co-3")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	require.Equal(t, "co-3", payload.CompanyID)
}

type stubBumper struct {
	bumped []string
	err    error
}

func (s *stubBumper) Invalidate(ctx context.Context, companyID string) error {
	s.bumped = append(s.bumped, companyID)
	return s.err
}

type stubEnqueuer struct {
	queued []string
	err    error
}

func (s *stubEnqueuer) EnqueueCacheWarmup(ctx context.Context, companyID string) error {
	s.queued = append(s.queued, companyID)
	return s.err
}

func TestCacheRefresher(t *testing.T) {
	bumper := &stubBumper{}
	queue := &stubEnqueuer{err: errors.New("redis busy")}
	refresher := &CacheRefresher{Cache: bumper, Queue: queue, Logger: discardLogger()}

	require.NoError(t, refresher.Invalidate(context.Background(), "co-1"))
	require.Equal(t, []string{"co-1"}, bumper.bumped)
	require.Equal(t, []string{"co-1"}, queue.queued)

	bumper.err = errors.New("bump failed")
	require.Error(t, refresher.Invalidate(context.Background(), "co-1"))
	require.Len(t, queue.queued, 1)
}

func TestNewWorkerValidatesConfig(t *testing.T) {
	mr := miniredis.RunT(t)
	opts := asynq.RedisClientOpt{Addr: mr.Addr()}

	_, err := NewWorker(WorkerConfig{RedisOpts: opts})
	require.Error(t, err)

	task, err := NewLowStockScanTask("", time.Now())
	require.NoError(t, err)
	handlers := []TaskHandler{{Type: TaskLowStockScan, Handler: func(context.Context, *asynq.Task) error { return nil }}}

	_, err = NewWorker(WorkerConfig{RedisOpts: opts, Handlers: handlers, Cron: []CronRegistration{{Spec: "not a cron", Task: task}}})
	require.Error(t, err)

	worker, err := NewWorker(WorkerConfig{RedisOpts: opts, Handlers: handlers, Cron: []CronRegistration{{Spec: "0 * * * *", Task: task}}})
	require.NoError(t, err)
	require.NotNil(t, worker)
}

func TestJobsHealthWithoutInspector(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/jobs", NewHandler(nil, discardLogger()).MountRoutes)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"queue":"default","pending":0}`, rr.Body.String())
}
