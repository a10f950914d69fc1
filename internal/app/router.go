package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/observability"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/httpx"
	reporthttp "github.com/V4Varunstar/aura-inventory-sub002/internal/reports/http"
	"github.com/V4Varunstar/aura-inventory-sub002/jobs"
)

// Pinger is a dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	InventoryHandler  *inventory.Handler
	MasterDataHandler *masterdata.Handler
	ReportHandler     *reporthttp.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
	// Checks are pinged by /healthz, keyed by dependency name.
	Checks map[string]Pinger
}

// NewRouter constructs the chi.Router with default middleware.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	if params.Config == nil || !params.Config.IsProduction() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", healthHandler(params.Checks))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	tenantHeader, actorHeader := "", ""
	if params.Config != nil {
		tenantHeader, actorHeader = params.Config.TenantHeader, params.Config.ActorHeader
	}
	r.Group(func(r chi.Router) {
		r.Use(TenantMiddleware(tenantHeader, actorHeader))
		if params.InventoryHandler != nil {
			r.Route("/inventory", params.InventoryHandler.MountRoutes)
		}
		if params.MasterDataHandler != nil {
			r.Route("/masterdata", params.MasterDataHandler.MountRoutes)
		}
		if params.ReportHandler != nil {
			r.Route("/reports", params.ReportHandler.MountRoutes)
		}
	})

	return r
}

func healthHandler(checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				deps[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "up"
		}
		body := map[string]any{"status": "ok", "dependencies": deps}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httpx.JSON(w, status, body)
	}
}
