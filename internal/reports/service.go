// Package reports serves ledger projections for a tenant, fetching the
// tenant's store concurrently and caching the snapshot in Redis.
package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/ledger"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/observability"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

// MasterDataSource reads products, warehouses and parties of a company.
type MasterDataSource interface {
	ListProducts(ctx context.Context, companyID string) ([]masterdata.Product, error)
	ListWarehouses(ctx context.Context, companyID string) ([]masterdata.Warehouse, error)
	ListParties(ctx context.Context, companyID string) ([]masterdata.Party, error)
}

// RecordSource reads the movement ledgers of a company, soft-deleted rows included.
type RecordSource interface {
	ListInward(ctx context.Context, companyID string) ([]inventory.InwardRecord, error)
	ListOutward(ctx context.Context, companyID string) ([]inventory.OutwardRecord, error)
}

// Recorder receives report build observations.
type Recorder interface {
	ObserveReport(reportType, source string, elapsed time.Duration)
}

// Service generates reports for one tenant at a time.
type Service struct {
	master  MasterDataSource
	records RecordSource
	cache   *Cache
	metrics Recorder
	logger  *slog.Logger
	group   singleflight.Group
}

// NewService wires the sources with an optional cache and recorder.
func NewService(master MasterDataSource, records RecordSource, cache *Cache, metrics Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{master: master, records: records, cache: cache, metrics: metrics, logger: logger}
}

// Generate runs one projection over the tenant's current dataset.
func (s *Service) Generate(ctx context.Context, tenant shared.Tenant, typ ledger.ReportType, filter ledger.Filter) (ledger.Report, error) {
	if !tenant.Valid() {
		return ledger.Report{}, shared.ErrTenantRequired
	}
	start := time.Now()
	data, source, err := s.Dataset(ctx, tenant.CompanyID)
	if err != nil {
		return ledger.Report{}, err
	}
	report, err := ledger.GenerateReport(typ, filter, data)
	if err != nil {
		return ledger.Report{}, err
	}
	s.observe(string(typ), source, start)
	return report, nil
}

// StockPositions returns all-time positions narrowed by warehouse and product.
func (s *Service) StockPositions(ctx context.Context, tenant shared.Tenant, filter ledger.Filter) ([]ledger.StockPosition, error) {
	if !tenant.Valid() {
		return nil, shared.ErrTenantRequired
	}
	start := time.Now()
	data, source, err := s.Dataset(ctx, tenant.CompanyID)
	if err != nil {
		return nil, err
	}
	positions := ledger.PositionsFor(data, filter)
	s.observe("positions", source, start)
	return positions, nil
}

// LowStock returns every position of the company at or below its threshold.
func (s *Service) LowStock(ctx context.Context, companyID string) ([]ledger.LowStockRow, error) {
	start := time.Now()
	data, source, err := s.Dataset(ctx, companyID)
	if err != nil {
		return nil, err
	}
	rows := ledger.LowStock(ledger.PositionsFor(data, ledger.Filter{}))
	s.observe(string(ledger.ReportLowStock), source, start)
	return rows, nil
}

// Invalidate drops the cached dataset of the company.
func (s *Service) Invalidate(ctx context.Context, companyID string) error {
	return s.cache.Bump(ctx, companyID)
}

// Warm loads the company's dataset into the cache.
func (s *Service) Warm(ctx context.Context, companyID string) error {
	_, _, err := s.Dataset(ctx, companyID)
	return err
}

// Dataset returns the company's snapshot and whether it came from the cache
// or the store. Concurrent callers for the same company share one fetch.
func (s *Service) Dataset(ctx context.Context, companyID string) (ledger.Dataset, string, error) {
	if companyID == "" {
		return ledger.Dataset{}, "", shared.ErrTenantRequired
	}
	key, err := s.cache.BuildKey(ctx, companyID, "dataset")
	if err != nil {
		s.logger.Warn("report cache unavailable", slog.String("company_id", companyID), slog.Any("error", err))
		data, err := s.fetch(ctx, companyID)
		return data, observability.SourceStore, err
	}
	type result struct {
		data   ledger.Dataset
		source string
	}
	val, err, _ := singleflightDo(ctx, &s.group, key, func(ctx context.Context) (any, error) {
		var (
			data      ledger.Dataset
			loaderErr error
		)
		hit, err := s.cache.FetchJSON(ctx, key, &data, func(ctx context.Context) (any, error) {
			fetched, err := s.fetch(ctx, companyID)
			loaderErr = err
			return fetched, err
		})
		if err != nil && loaderErr == nil {
			s.logger.Warn("report cache read failed", slog.String("company_id", companyID), slog.Any("error", err))
			data, err = s.fetch(ctx, companyID)
		}
		if err != nil {
			return nil, err
		}
		source := observability.SourceStore
		if hit {
			source = observability.SourceCache
		}
		return result{data: data, source: source}, nil
	})
	if err != nil {
		return ledger.Dataset{}, "", err
	}
	res := val.(result)
	return res.data, res.source, nil
}

func (s *Service) fetch(ctx context.Context, companyID string) (ledger.Dataset, error) {
	if s.master == nil || s.records == nil {
		return ledger.Dataset{}, errors.New("reports: sources not configured")
	}
	var data ledger.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Products, err = s.master.ListProducts(gctx, companyID)
		return wrap("products", err)
	})
	g.Go(func() (err error) {
		data.Warehouses, err = s.master.ListWarehouses(gctx, companyID)
		return wrap("warehouses", err)
	})
	g.Go(func() (err error) {
		data.Parties, err = s.master.ListParties(gctx, companyID)
		return wrap("parties", err)
	})
	g.Go(func() (err error) {
		data.Inward, err = s.records.ListInward(gctx, companyID)
		return wrap("inward", err)
	})
	g.Go(func() (err error) {
		data.Outward, err = s.records.ListOutward(gctx, companyID)
		return wrap("outward", err)
	})
	if err := g.Wait(); err != nil {
		return ledger.Dataset{}, err
	}
	return data, nil
}

func (s *Service) observe(reportType, source string, start time.Time) {
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveReport(reportType, source, elapsed)
	}
	s.logger.Debug("report built", slog.String("type", reportType), slog.String("source", source), slog.Duration("elapsed", elapsed))
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("reports: load %s: %w", what, err)
	}
	return fmt.Errorf("reports: load %s: %w: %w", what, shared.ErrUnavailable, err)
}
