package reporthttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/ledger"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/httpx"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/reports/export"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

// ReportService defines the report contract used by the handler.
type ReportService interface {
	Generate(ctx context.Context, tenant shared.Tenant, typ ledger.ReportType, filter ledger.Filter) (ledger.Report, error)
	StockPositions(ctx context.Context, tenant shared.Tenant, filter ledger.Filter) ([]ledger.StockPosition, error)
}

// Options tune the handler.
type Options struct {
	// Location anchors date filters and date buckets; nil means UTC.
	Location *time.Location
	// ExportLimit caps CSV/XLSX exports per company per minute.
	ExportLimit int
}

// Handler serves report endpoints.
type Handler struct {
	logger      *slog.Logger
	service     ReportService
	validate    *validator.Validate
	location    *time.Location
	exportLimit int
}

// NewHandler constructs the report HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.ExportLimit <= 0 {
		opts.ExportLimit = 10
	}
	return &Handler{
		logger:      logger,
		service:     service,
		validate:    validator.New(),
		location:    opts.Location,
		exportLimit: opts.ExportLimit,
	}
}

type reportQuery struct {
	Start       string `validate:"omitempty,datetime=2006-01-02"`
	End         string `validate:"omitempty,datetime=2006-01-02"`
	WarehouseID string `validate:"omitempty,max=64"`
	ProductID   string `validate:"omitempty,max=64"`
	PartyID     string `validate:"omitempty,max=64"`
	Format      string `validate:"omitempty,oneof=json csv xlsx"`
}

type positionsResponse struct {
	Positions []ledger.StockPosition `json:"positions"`
	Count     int                    `json:"count"`
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, "")
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, formatCSV)
}

func (h *Handler) handleXLSX(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, formatXLSX)
}

func (h *Handler) serveReport(w http.ResponseWriter, r *http.Request, format string) {
	tenant, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantRequired)
		return
	}
	typ, err := ledger.ParseReportType(chi.URLParam(r, "type"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Unknown Report", err.Error())
		return
	}
	query, filter, err := h.parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if format == "" {
		format = query.Format
	}

	report, err := h.service.Generate(r.Context(), tenant, typ, filter)
	if err != nil {
		h.handleServerError(w, "report generation failed", err)
		return
	}

	switch format {
	case formatCSV:
		var buf bytes.Buffer
		if err := export.WriteReportCSV(&buf, report); err != nil {
			h.handleServerError(w, "csv export failed", err)
			return
		}
		h.attach(w, "text/csv; charset=utf-8", filename(typ, "csv"), buf.Bytes())
	case formatXLSX:
		var buf bytes.Buffer
		if err := export.WriteReportXLSX(&buf, report); err != nil {
			h.handleServerError(w, "xlsx export failed", err)
			return
		}
		h.attach(w, export.ContentTypeXLSX, filename(typ, "xlsx"), buf.Bytes())
	default:
		httpx.JSON(w, http.StatusOK, report)
	}
}

func (h *Handler) handlePositions(w http.ResponseWriter, r *http.Request) {
	tenant, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantRequired)
		return
	}
	_, filter, err := h.parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	positions, err := h.service.StockPositions(r.Context(), tenant, filter)
	if err != nil {
		h.handleServerError(w, "stock positions failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, positionsResponse{Positions: positions, Count: len(positions)})
}

func (h *Handler) parseFilter(r *http.Request) (reportQuery, ledger.Filter, error) {
	q := r.URL.Query()
	query := reportQuery{
		Start:       strings.TrimSpace(q.Get("start")),
		End:         strings.TrimSpace(q.Get("end")),
		WarehouseID: strings.TrimSpace(q.Get("warehouse_id")),
		ProductID:   strings.TrimSpace(q.Get("product_id")),
		PartyID:     strings.TrimSpace(q.Get("party_id")),
		Format:      strings.ToLower(strings.TrimSpace(q.Get("format"))),
	}
	if err := h.validate.Struct(query); err != nil {
		return query, ledger.Filter{}, fmt.Errorf("reports: %w: %v", shared.ErrValidation, err)
	}
	filter := ledger.Filter{
		WarehouseID: query.WarehouseID,
		ProductID:   query.ProductID,
		PartyID:     query.PartyID,
		Location:    h.location,
	}
	if query.Start != "" {
		filter.StartDate, _ = time.ParseInLocation(ledger.DateLayout, query.Start, h.location)
	}
	if query.End != "" {
		filter.EndDate, _ = time.ParseInLocation(ledger.DateLayout, query.End, h.location)
	}
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() && filter.EndDate.Before(filter.StartDate) {
		return query, ledger.Filter{}, fmt.Errorf("reports: %w: end before start", shared.ErrValidation)
	}
	return query, filter, nil
}

func (h *Handler) attach(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) handleServerError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if errors.Is(err, ledger.ErrUnknownReportType) {
		httpx.Problem(w, http.StatusNotFound, "Unknown Report", err.Error())
		return
	}
	h.logger.Error(msg, slog.Any("error", err))
	httpx.RespondError(w, err)
}

func filename(typ ledger.ReportType, ext string) string {
	return fmt.Sprintf("%s-report.%s", typ, ext)
}
