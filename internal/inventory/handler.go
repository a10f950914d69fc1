package inventory

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/httpx"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

// IntakeService defines the write operations exposed over HTTP.
type IntakeService interface {
	RecordInward(ctx context.Context, input InwardInput) (InwardRecord, error)
	RecordOutward(ctx context.Context, input OutwardInput) (OutwardRecord, error)
	Delete(ctx context.Context, tenant shared.Tenant, kind RecordKind, id, actorID string) error
}

// Handler wires HTTP endpoints for movement intake.
type Handler struct {
	logger  *slog.Logger
	service IntakeService
}

// NewHandler constructs inventory handler.
func NewHandler(logger *slog.Logger, service IntakeService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/inward", h.handleInward)
	r.Post("/outward", h.handleOutward)
	r.Delete("/{kind}/{id}", h.handleDelete)
}

func (h *Handler) handleInward(w http.ResponseWriter, r *http.Request) {
	tenant, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantRequired)
		return
	}
	var input InwardInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	input.CompanyID = tenant.CompanyID
	input.ActorID = tenant.ActorID
	rec, err := h.service.RecordInward(r.Context(), input)
	if err != nil {
		h.fail(w, "record inward", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleOutward(w http.ResponseWriter, r *http.Request) {
	tenant, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantRequired)
		return
	}
	var input OutwardInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	input.CompanyID = tenant.CompanyID
	input.ActorID = tenant.ActorID
	rec, err := h.service.RecordOutward(r.Context(), input)
	if err != nil {
		h.fail(w, "record outward", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	tenant, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantRequired)
		return
	}
	kind, err := ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), tenant, kind, chi.URLParam(r, "id"), tenant.ActorID); err != nil {
		h.fail(w, "delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Warn("inventory intake failed", slog.String("op", op), slog.Any("error", err))
	httpx.RespondError(w, err)
}
