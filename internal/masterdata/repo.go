package masterdata

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository reads tenant master data from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListProducts returns every product owned by the company.
func (r *Repository) ListProducts(ctx context.Context, companyID string) ([]Product, error) {
	if r == nil {
		return nil, errors.New("masterdata repository not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, company_id, sku, COALESCE(ean, ''), name, COALESCE(cost_price, 0)::text, min_stock, created_at
FROM products
WHERE company_id = $1
ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		var (
			p    Product
			cost string
		)
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.EAN, &p.Name, &cost, &p.MinStock, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.CostPrice, err = decimal.NewFromString(cost); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListWarehouses returns every warehouse owned by the company.
func (r *Repository) ListWarehouses(ctx context.Context, companyID string) ([]Warehouse, error) {
	if r == nil {
		return nil, errors.New("masterdata repository not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, company_id, name FROM warehouses WHERE company_id = $1 ORDER BY name, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	warehouses := []Warehouse{}
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.Name); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

// ListParties returns every customer and supplier of the company.
func (r *Repository) ListParties(ctx context.Context, companyID string) ([]Party, error) {
	if r == nil {
		return nil, errors.New("masterdata repository not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, company_id, name, COALESCE(party_type, '') FROM parties WHERE company_id = $1 ORDER BY name, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	parties := []Party{}
	for rows.Next() {
		var (
			p       Party
			rawType string
		)
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &rawType); err != nil {
			return nil, err
		}
		p.Type = ParsePartyType(rawType)
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

// ListCompanyIDs returns every company that owns at least one product.
func (r *Repository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	if r == nil {
		return nil, errors.New("masterdata repository not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT company_id FROM products ORDER BY company_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
