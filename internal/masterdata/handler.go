package masterdata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/httpx"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

// Reader exposes the tenant catalogue used by the lookup endpoints.
type Reader interface {
	ListProducts(ctx context.Context, companyID string) ([]Product, error)
	ListWarehouses(ctx context.Context, companyID string) ([]Warehouse, error)
	ListParties(ctx context.Context, companyID string) ([]Party, error)
}

// ListFilters represents standard list page filters.
type ListFilters struct {
	Page   int
	Limit  int
	Search string
}

const maxListLimit = 200

// Handler serves read-only master data lookups for intake forms.
type Handler struct {
	logger *slog.Logger
	reader Reader
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, reader Reader) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, reader: reader}
}

// MountRoutes registers master data routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/warehouses", h.listWarehouses)
	r.Get("/parties", h.listParties)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	tenant, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantRequired)
		return
	}
	filters := parseFilters(r)
	products, err := h.reader.ListProducts(r.Context(), tenant.CompanyID)
	if err != nil {
		h.logger.Error("list products failed", slog.String("company_id", tenant.CompanyID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	matched := products[:0:0]
	for _, p := range products {
		if filters.matches(p.Name, p.SKU, p.EAN) {
			matched = append(matched, p)
		}
	}
	respondPage(w, matched, filters)
}

func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	tenant, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantRequired)
		return
	}
	filters := parseFilters(r)
	warehouses, err := h.reader.ListWarehouses(r.Context(), tenant.CompanyID)
	if err != nil {
		h.logger.Error("list warehouses failed", slog.String("company_id", tenant.CompanyID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	matched := warehouses[:0:0]
	for _, wh := range warehouses {
		if filters.matches(wh.Name) {
			matched = append(matched, wh)
		}
	}
	respondPage(w, matched, filters)
}

func (h *Handler) listParties(w http.ResponseWriter, r *http.Request) {
	tenant, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantRequired)
		return
	}
	filters := parseFilters(r)
	var wanted PartyType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, ok := LookupPartyType(raw)
		if !ok {
			httpx.RespondError(w, fmt.Errorf("masterdata: %w: unknown party type %q", shared.ErrValidation, raw))
			return
		}
		wanted = t
	}
	parties, err := h.reader.ListParties(r.Context(), tenant.CompanyID)
	if err != nil {
		h.logger.Error("list parties failed", slog.String("company_id", tenant.CompanyID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	matched := parties[:0:0]
	for _, p := range parties {
		if wanted != "" && p.Type != wanted && p.Type != PartyTypeBoth {
			continue
		}
		if filters.matches(p.Name) {
			matched = append(matched, p)
		}
	}
	respondPage(w, matched, filters)
}

func parseFilters(r *http.Request) ListFilters {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 50
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return ListFilters{
		Page:   page,
		Limit:  limit,
		Search: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search"))),
	}
}

func (f ListFilters) matches(fields ...string) bool {
	if f.Search == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), f.Search) {
			return true
		}
	}
	return false
}

func respondPage[T any](w http.ResponseWriter, items []T, f ListFilters) {
	total := len(items)
	start := total
	// Compare before multiplying so huge page numbers cannot overflow.
	if f.Page-1 <= total/f.Limit {
		start = min((f.Page-1)*f.Limit, total)
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": items[start:end],
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
	})
}
