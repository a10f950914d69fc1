package masterdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

type stubReader struct {
	products   []Product
	warehouses []Warehouse
	parties    []Party
	err        error
	company    string
}

func (s *stubReader) ListProducts(_ context.Context, companyID string) ([]Product, error) {
	s.company = companyID
	return s.products, s.err
}

func (s *stubReader) ListWarehouses(_ context.Context, companyID string) ([]Warehouse, error) {
	s.company = companyID
	return s.warehouses, s.err
}

func (s *stubReader) ListParties(_ context.Context, companyID string) ([]Party, error) {
	s.company = companyID
	return s.parties, s.err
}

type pageBody[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func newTestRouter(reader Reader, withTenant bool) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if withTenant {
				req = req.WithContext(shared.ContextWithTenant(req.Context(), shared.NewTenant("co-1", "u-1")))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/masterdata", NewHandler(nil, reader).MountRoutes)
	return r
}

func TestListProductsSearchAndPaging(t *testing.T) {
	reader := &stubReader{products: []Product{
		{ID: "p1", Name: "Rose Lipstick", SKU: "LIP-01"},
		{ID: "p2", Name: "Night Cream", SKU: "CRM-01"},
		{ID: "p3", Name: "Matte Lipstick", SKU: "LIP-02"},
	}}
	router := newTestRouter(reader, true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/masterdata/products?search=lip&limit=1&page=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body pageBody[Product]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	require.Equal(t, 2, body.Page)
	require.Len(t, body.Items, 1)
	require.Equal(t, "p3", body.Items[0].ID)
	require.Equal(t, "co-1", reader.company)
}

func TestListPartiesByType(t *testing.T) {
	reader := &stubReader{parties: []Party{
		{ID: "s1", Name: "Glow Supplies", Type: PartyTypeSupplier},
		{ID: "c1", Name: "Salon One", Type: PartyTypeCustomer},
		{ID: "b1", Name: "Beauty Hub", Type: PartyTypeBoth},
	}}
	rec := httptest.NewRecorder()
	newTestRouter(reader, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/masterdata/parties?type=supplier", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body pageBody[Party]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	require.Equal(t, "s1", body.Items[0].ID)
	require.Equal(t, "b1", body.Items[1].ID)
}

func TestListPartiesRejectsUnknownType(t *testing.T) {
	reader := &stubReader{parties: []Party{{ID: "b1", Name: "Beauty Hub", Type: PartyTypeBoth}}}
	rec := httptest.NewRecorder()
	newTestRouter(reader, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/masterdata/parties?type=distributor", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, reader.company)

	rec = httptest.NewRecorder()
	newTestRouter(reader, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/masterdata/parties?type=BOTH", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListProductsHugePageIsEmpty(t *testing.T) {
	reader := &stubReader{products: []Product{{ID: "p1", Name: "Rose Lipstick"}, {ID: "p2", Name: "Night Cream"}}}
	rec := httptest.NewRecorder()
	newTestRouter(reader, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/masterdata/products?page=92233720368547758&limit=200", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body pageBody[Product]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	require.Empty(t, body.Items)
}

func TestListWarehousesPastLastPage(t *testing.T) {
	reader := &stubReader{warehouses: []Warehouse{{ID: "w1", Name: "Main"}}}
	rec := httptest.NewRecorder()
	newTestRouter(reader, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/masterdata/warehouses?page=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body pageBody[Warehouse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	require.Empty(t, body.Items)
	require.Equal(t, 50, body.Limit)
}

func TestMasterDataRequiresTenant(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubReader{}, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/masterdata/products", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMasterDataStoreFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubReader{err: errors.New("db down")}, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/masterdata/warehouses", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
