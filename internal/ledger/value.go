package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
)

// ValueAnalysis is the single-row summary of movement and stock value.
type ValueAnalysis struct {
	TotalInwardQty      int64
	TotalInwardValue    decimal.Decimal
	TotalOutwardQty     int64
	TotalOutwardValue   decimal.Decimal
	AvgInwardPrice      decimal.Decimal
	AvgOutwardPrice     decimal.Decimal
	InwardTransactions  int
	OutwardTransactions int
	CurrentStockQty     int64
	CurrentStockValue   decimal.Decimal
}

// AnalyseValue totals the filtered records and the supplied stock positions.
// Averages are zero when the matching quantity is zero.
func AnalyseValue(catalog *Catalog, inward []inventory.InwardRecord, outward []inventory.OutwardRecord, positions []StockPosition) ValueAnalysis {
	v := ValueAnalysis{
		TotalInwardValue:    decimal.Zero,
		TotalOutwardValue:   decimal.Zero,
		InwardTransactions:  len(inward),
		OutwardTransactions: len(outward),
	}
	for _, rec := range inward {
		v.TotalInwardQty += rec.Quantity
		v.TotalInwardValue = v.TotalInwardValue.Add(catalog.unitCost(rec.UnitCost, rec.ProductID).Mul(decimal.NewFromInt(rec.Quantity)))
	}
	for _, rec := range outward {
		v.TotalOutwardQty += rec.Quantity
		v.TotalOutwardValue = v.TotalOutwardValue.Add(catalog.unitCost(rec.UnitCost, rec.ProductID).Mul(decimal.NewFromInt(rec.Quantity)))
	}
	v.AvgInwardPrice = AveragePrice(v.TotalInwardValue, v.TotalInwardQty)
	v.AvgOutwardPrice = AveragePrice(v.TotalOutwardValue, v.TotalOutwardQty)
	v.CurrentStockQty, v.CurrentStockValue = TotalStock(positions)
	return v
}
