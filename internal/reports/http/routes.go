package reporthttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/httpx"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

// MountRoutes registers report endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(h.exportLimit, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests", "export rate limit reached")
		}),
	)

	r.Get("/stock-positions", h.handlePositions)
	r.With(limitFileFormats(limiter)).Get("/{type}", h.handleReport)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/{type}/export.csv", h.handleCSV)
		gr.Get("/{type}/export.xlsx", h.handleXLSX)
	})
}

// limitFileFormats applies the export limiter when the query asks for a file.
func limitFileFormats(limiter func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))) {
			case formatCSV, formatXLSX:
				limited.ServeHTTP(w, r)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func rateLimitKey(r *http.Request) (string, error) {
	if tenant, ok := shared.TenantFromContext(r.Context()); ok {
		return "company:" + tenant.CompanyID, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
