package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
)

// InwardRow is one inward record enriched with display names.
type InwardRow struct {
	ID            string
	Date          time.Time
	ProductID     string
	ProductName   string
	SKU           string
	WarehouseName string
	PartyName     string
	Quantity      int64
	UnitCost      decimal.Decimal
	TotalValue    decimal.Decimal
	BatchNo       string
	ExpiryDate    *time.Time
}

// OutwardRow is one outward record enriched with display names.
type OutwardRow struct {
	ID            string
	Date          time.Time
	ProductID     string
	ProductName   string
	SKU           string
	WarehouseName string
	PartyName     string
	Destination   string
	Quantity      int64
	UnitCost      decimal.Decimal
	TotalValue    decimal.Decimal
}

// InwardListing emits one row per record in input order. Dates are expressed
// in loc so they agree with the filter bounds and date buckets.
func InwardListing(catalog *Catalog, records []inventory.InwardRecord, loc *time.Location) []InwardRow {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([]InwardRow, 0, len(records))
	for _, rec := range records {
		cost := catalog.unitCost(rec.UnitCost, rec.ProductID)
		rows = append(rows, InwardRow{
			ID:            rec.ID,
			Date:          rec.EffectiveDate().In(loc),
			ProductID:     rec.ProductID,
			ProductName:   catalog.ProductName(rec.ProductID),
			SKU:           catalog.ProductSKU(rec.ProductID),
			WarehouseName: catalog.WarehouseName(rec.WarehouseID),
			PartyName:     catalog.PartyName(rec.PartyID),
			Quantity:      rec.Quantity,
			UnitCost:      cost,
			TotalValue:    cost.Mul(decimal.NewFromInt(rec.Quantity)),
			BatchNo:       rec.BatchNo,
			ExpiryDate:    rec.ExpiryDate,
		})
	}
	return rows
}

// OutwardListing emits one row per record in input order, dated in loc.
func OutwardListing(catalog *Catalog, records []inventory.OutwardRecord, loc *time.Location) []OutwardRow {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([]OutwardRow, 0, len(records))
	for _, rec := range records {
		cost := catalog.unitCost(rec.UnitCost, rec.ProductID)
		rows = append(rows, OutwardRow{
			ID:            rec.ID,
			Date:          rec.EffectiveDate().In(loc),
			ProductID:     rec.ProductID,
			ProductName:   catalog.ProductName(rec.ProductID),
			SKU:           catalog.ProductSKU(rec.ProductID),
			WarehouseName: catalog.WarehouseName(rec.WarehouseID),
			PartyName:     catalog.PartyName(rec.PartyID),
			Destination:   rec.Destination,
			Quantity:      rec.Quantity,
			UnitCost:      cost,
			TotalValue:    cost.Mul(decimal.NewFromInt(rec.Quantity)),
		})
	}
	return rows
}
