package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/shared"
)

// RecordKind distinguishes the two movement ledgers.
type RecordKind string

const (
	// KindInward is a receipt of stock into a warehouse.
	KindInward RecordKind = "inward"
	// KindOutward is a dispatch of stock out of a warehouse.
	KindOutward RecordKind = "outward"
)

// InwardRecord models a receipt of stock. Records are never mutated once
// written; removal only sets IsDeleted.
type InwardRecord struct {
	ID          string           `json:"id"`
	CompanyID   string           `json:"company_id"`
	ProductID   string           `json:"product_id"`
	WarehouseID string           `json:"warehouse_id"`
	Quantity    int64            `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	PartyID     string           `json:"party_id,omitempty"`
	// TransactionDate is the business date of the receipt; zero when not captured.
	TransactionDate time.Time  `json:"transaction_date"`
	CreatedAt       time.Time  `json:"created_at"`
	BatchNo         string     `json:"batch_no,omitempty"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	IsDeleted       bool       `json:"is_deleted"`
}

// EffectiveDate prefers the business date over the entry timestamp.
func (r InwardRecord) EffectiveDate() time.Time {
	return effectiveDate(r.TransactionDate, r.CreatedAt)
}

// OutwardRecord models a dispatch of stock.
type OutwardRecord struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	// UnitCost overrides the product cost price when set.
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	PartyID         string           `json:"party_id,omitempty"`
	Destination     string           `json:"destination,omitempty"`
	TransactionDate time.Time        `json:"transaction_date"`
	CreatedAt       time.Time        `json:"created_at"`
	IsDeleted       bool             `json:"is_deleted"`
}

// EffectiveDate prefers the business date over the entry timestamp.
func (r OutwardRecord) EffectiveDate() time.Time {
	return effectiveDate(r.TransactionDate, r.CreatedAt)
}

func effectiveDate(txDate, createdAt time.Time) time.Time {
	if !txDate.IsZero() {
		return txDate
	}
	return createdAt
}

// InwardInput describes a receipt captured by an intake workflow.
type InwardInput struct {
	CompanyID       string           `json:"-" validate:"required"`
	ProductID       string           `json:"product_id" validate:"required,max=64"`
	WarehouseID     string           `json:"warehouse_id" validate:"required,max=64"`
	Quantity        int64            `json:"quantity" validate:"gt=0"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	PartyID         string           `json:"party_id,omitempty" validate:"omitempty,max=64"`
	TransactionDate time.Time        `json:"transaction_date"`
	BatchNo         string           `json:"batch_no,omitempty" validate:"omitempty,max=64"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"`
	ActorID         string           `json:"-"`
}

// OutwardInput describes a dispatch captured by an intake workflow.
type OutwardInput struct {
	CompanyID       string           `json:"-" validate:"required"`
	ProductID       string           `json:"product_id" validate:"required,max=64"`
	WarehouseID     string           `json:"warehouse_id" validate:"required,max=64"`
	Quantity        int64            `json:"quantity" validate:"gt=0"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	PartyID         string           `json:"party_id,omitempty" validate:"omitempty,max=64"`
	Destination     string           `json:"destination,omitempty" validate:"omitempty,max=200"`
	TransactionDate time.Time        `json:"transaction_date"`
	ActorID         string           `json:"-"`
}

var (
	// ErrInvalidQuantity indicates a non-positive quantity.
	ErrInvalidQuantity = fmt.Errorf("inventory: quantity must be positive: %w", shared.ErrValidation)
	// ErrInvalidUnitCost indicates invalid cost value.
	ErrInvalidUnitCost = fmt.Errorf("inventory: unit cost must be >= 0: %w", shared.ErrValidation)
	// ErrRecordNotFound is returned when soft-deleting an unknown record.
	ErrRecordNotFound = fmt.Errorf("inventory: record %w", shared.ErrNotFound)
	// ErrUnknownKind is returned for kinds other than inward and outward.
	ErrUnknownKind = fmt.Errorf("inventory: unknown record kind: %w", shared.ErrValidation)
)

// ParseKind validates a record kind taken from a URL.
func ParseKind(raw string) (RecordKind, error) {
	switch RecordKind(raw) {
	case KindInward, KindOutward:
		return RecordKind(raw), nil
	}
	return "", ErrUnknownKind
}
