package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/platform/db"
)

// Repository persists movement records in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListInward returns every inward record of the company, soft-deleted rows included.
func (r *Repository) ListInward(ctx context.Context, companyID string) ([]InwardRecord, error) {
	if r == nil {
		return nil, errors.New("inventory repository not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, company_id, product_id, warehouse_id, quantity, unit_cost::text, COALESCE(party_id, ''),
	transaction_date, created_at, COALESCE(batch_no, ''), expiry_date, is_deleted
FROM inventory_inward
WHERE company_id = $1
ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := []InwardRecord{}
	for rows.Next() {
		var (
			rec    InwardRecord
			cost   *string
			txDate *time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.CompanyID, &rec.ProductID, &rec.WarehouseID, &rec.Quantity, &cost, &rec.PartyID,
			&txDate, &rec.CreatedAt, &rec.BatchNo, &rec.ExpiryDate, &rec.IsDeleted); err != nil {
			return nil, err
		}
		if rec.UnitCost, err = parseCost(cost); err != nil {
			return nil, err
		}
		if txDate != nil {
			rec.TransactionDate = *txDate
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListOutward returns every outward record of the company, soft-deleted rows included.
func (r *Repository) ListOutward(ctx context.Context, companyID string) ([]OutwardRecord, error) {
	if r == nil {
		return nil, errors.New("inventory repository not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, company_id, product_id, warehouse_id, quantity, unit_cost::text, COALESCE(party_id, ''),
	COALESCE(destination, ''), transaction_date, created_at, is_deleted
FROM inventory_outward
WHERE company_id = $1
ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := []OutwardRecord{}
	for rows.Next() {
		var (
			rec    OutwardRecord
			cost   *string
			txDate *time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.CompanyID, &rec.ProductID, &rec.WarehouseID, &rec.Quantity, &cost, &rec.PartyID,
			&rec.Destination, &txDate, &rec.CreatedAt, &rec.IsDeleted); err != nil {
			return nil, err
		}
		if rec.UnitCost, err = parseCost(cost); err != nil {
			return nil, err
		}
		if txDate != nil {
			rec.TransactionDate = *txDate
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// InsertInward stores a new inward record.
func (r *Repository) InsertInward(ctx context.Context, rec InwardRecord) error {
	if r == nil {
		return errors.New("inventory repository not initialised")
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO inventory_inward (id, company_id, product_id, warehouse_id, quantity, unit_cost, party_id, transaction_date, created_at, batch_no, expiry_date, is_deleted)
VALUES ($1,$2,$3,$4,$5,$6::text::numeric,$7,$8,$9,$10,$11,FALSE)`,
		rec.ID, rec.CompanyID, rec.ProductID, rec.WarehouseID, rec.Quantity, costArg(rec.UnitCost), nullString(rec.PartyID),
		nullTime(rec.TransactionDate), rec.CreatedAt, nullString(rec.BatchNo), rec.ExpiryDate)
	return err
}

// InsertOutward stores a new outward record.
func (r *Repository) InsertOutward(ctx context.Context, rec OutwardRecord) error {
	if r == nil {
		return errors.New("inventory repository not initialised")
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO inventory_outward (id, company_id, product_id, warehouse_id, quantity, unit_cost, party_id, destination, transaction_date, created_at, is_deleted)
VALUES ($1,$2,$3,$4,$5,$6::text::numeric,$7,$8,$9,$10,FALSE)`,
		rec.ID, rec.CompanyID, rec.ProductID, rec.WarehouseID, rec.Quantity, costArg(rec.UnitCost), nullString(rec.PartyID),
		nullString(rec.Destination), nullTime(rec.TransactionDate), rec.CreatedAt)
	return err
}

// SoftDelete flags a record as deleted. Deleting an already deleted record is a no-op.
func (r *Repository) SoftDelete(ctx context.Context, companyID string, kind RecordKind, id string) error {
	if r == nil {
		return errors.New("inventory repository not initialised")
	}
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var deleted bool
		err := tx.QueryRow(ctx, fmt.Sprintf(`SELECT is_deleted FROM %s WHERE company_id = $1 AND id = $2 FOR UPDATE`, table), companyID, id).Scan(&deleted)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrRecordNotFound
			}
			return err
		}
		if deleted {
			return nil
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET is_deleted = TRUE, deleted_at = NOW() WHERE company_id = $1 AND id = $2`, table), companyID, id)
		return err
	})
}

func tableFor(kind RecordKind) (string, error) {
	switch kind {
	case KindInward:
		return "inventory_inward", nil
	case KindOutward:
		return "inventory_outward", nil
	default:
		return "", ErrUnknownKind
	}
}

func parseCost(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, fmt.Errorf("inventory: parse unit cost: %w", err)
	}
	return &d, nil
}

func costArg(cost *decimal.Decimal) any {
	if cost == nil {
		return nil
	}
	return cost.String()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
