package inventory

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

func newTestRouter(svc IntakeService) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if company := req.Header.Get("X-Company-ID"); company != "" {
				req = req.WithContext(shared.ContextWithTenant(req.Context(), shared.NewTenant(company, "tester")))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/inventory", NewHandler(nil, svc).MountRoutes)
	return r
}

func TestHandlerRecordInward(t *testing.T) {
	svc, repo, _, _ := newTestService()
	router := newTestRouter(svc)

	body := `{"product_id":"P1","warehouse_id":"W1","quantity":5,"unit_cost":"9.90","transaction_date":"2025-01-03T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/inventory/inward", strings.NewReader(body))
	req.Header.Set("X-Company-ID", "co-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.inward, 1)
	require.Equal(t, "co-1", repo.inward[0].CompanyID)
	require.Equal(t, "9.9", repo.inward[0].UnitCost.String())
}

func TestHandlerRejectsMissingTenant(t *testing.T) {
	svc, _, _, _ := newTestService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/inventory/outward", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Tenant Required")
}

func TestHandlerValidationProblem(t *testing.T) {
	svc, _, _, _ := newTestService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/inventory/outward", strings.NewReader(`{"product_id":"P1","warehouse_id":"W1","quantity":-2}`))
	req.Header.Set("X-Company-ID", "co-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Validation Failed")
}

func TestHandlerDelete(t *testing.T) {
	svc, repo, _, _ := newTestService()
	router := newTestRouter(svc)
	repo.inward = append(repo.inward, InwardRecord{ID: "r-1", CompanyID: "co-1", Quantity: 2})

	req := httptest.NewRequest(http.MethodDelete, "/inventory/inward/r-1", nil)
	req.Header.Set("X-Company-ID", "co-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, repo.inward[0].IsDeleted)

	req = httptest.NewRequest(http.MethodDelete, "/inventory/inward/missing", nil)
	req.Header.Set("X-Company-ID", "co-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/inventory/transfer/r-1", nil)
	req.Header.Set("X-Company-ID", "co-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
