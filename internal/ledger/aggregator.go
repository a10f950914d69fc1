package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
)

// PositionKey identifies a product in a warehouse.
type PositionKey struct {
	ProductID   string
	WarehouseID string
}

// StockPosition is the derived quantity and value of a product in a warehouse.
// CurrentStock and TotalValue may be negative when outward exceeds inward.
type StockPosition struct {
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	ProductName   string          `json:"product_name"`
	SKU           string          `json:"sku"`
	WarehouseName string          `json:"warehouse_name"`
	InwardQty     int64           `json:"inward_qty"`
	OutwardQty    int64           `json:"outward_qty"`
	CurrentStock  int64           `json:"current_stock"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalValue    decimal.Decimal `json:"total_value"`
	MinStock      int64           `json:"min_stock"`
}

// Key returns the position key.
func (p StockPosition) Key() PositionKey {
	return PositionKey{ProductID: p.ProductID, WarehouseID: p.WarehouseID}
}

// StockPositions maps keys to positions and remembers first-seen order.
type StockPositions struct {
	index map[PositionKey]int
	list  []StockPosition
}

// Get returns the position for key.
func (s StockPositions) Get(key PositionKey) (StockPosition, bool) {
	i, ok := s.index[key]
	if !ok {
		return StockPosition{}, false
	}
	return s.list[i], true
}

// All returns positions in first-seen order: keys from inward records
// first, then keys that only occur in outward records.
func (s StockPositions) All() []StockPosition {
	out := make([]StockPosition, len(s.list))
	copy(out, s.list)
	return out
}

// Len returns the number of positions.
func (s StockPositions) Len() int {
	return len(s.list)
}

// Filter keeps positions matching the warehouse and product criteria.
func (s StockPositions) Filter(f Filter) []StockPosition {
	out := make([]StockPosition, 0, len(s.list))
	for _, p := range s.list {
		if f.MatchPosition(p.Key()) {
			out = append(out, p)
		}
	}
	return out
}

// TotalStock sums current stock and value across positions.
func TotalStock(positions []StockPosition) (int64, decimal.Decimal) {
	var qty int64
	value := decimal.Zero
	for _, p := range positions {
		qty += p.CurrentStock
		value = value.Add(p.TotalValue)
	}
	return qty, value
}

// ComputeStockPositions folds inward and outward records into one position per
// (product, warehouse) pair seen in either set. Callers pass records already
// stripped of soft-deleted rows. Valuation uses each product's current cost price.
// Unknown references never fail; their names resolve to UnknownLabel.
func ComputeStockPositions(products []masterdata.Product, warehouses []masterdata.Warehouse, inward []inventory.InwardRecord, outward []inventory.OutwardRecord) StockPositions {
	return computePositions(NewCatalog(products, warehouses, nil), inward, outward)
}

func computePositions(catalog *Catalog, inward []inventory.InwardRecord, outward []inventory.OutwardRecord) StockPositions {
	s := StockPositions{index: make(map[PositionKey]int)}
	slot := func(productID, warehouseID string) *StockPosition {
		key := PositionKey{ProductID: productID, WarehouseID: warehouseID}
		if i, ok := s.index[key]; ok {
			return &s.list[i]
		}
		s.index[key] = len(s.list)
		s.list = append(s.list, StockPosition{ProductID: productID, WarehouseID: warehouseID})
		return &s.list[len(s.list)-1]
	}
	for _, rec := range inward {
		slot(rec.ProductID, rec.WarehouseID).InwardQty += rec.Quantity
	}
	for _, rec := range outward {
		slot(rec.ProductID, rec.WarehouseID).OutwardQty += rec.Quantity
	}
	for i := range s.list {
		p := &s.list[i]
		p.ProductName = catalog.ProductName(p.ProductID)
		p.SKU = catalog.ProductSKU(p.ProductID)
		p.WarehouseName = catalog.WarehouseName(p.WarehouseID)
		if product, ok := catalog.Product(p.ProductID); ok {
			p.MinStock = product.Threshold()
		}
		p.CurrentStock = p.InwardQty - p.OutwardQty
		p.UnitCost = catalog.valuationCost(p.ProductID)
		p.TotalValue = p.UnitCost.Mul(decimal.NewFromInt(p.CurrentStock))
	}
	return s
}

// Totals holds global quantity sums over a record set.
type Totals struct {
	InwardQty    int64
	OutwardQty   int64
	InwardCount  int
	OutwardCount int
}

// Net returns inward minus outward quantity.
func (t Totals) Net() int64 {
	return t.InwardQty - t.OutwardQty
}

// SumTotals computes global totals.
func SumTotals(inward []inventory.InwardRecord, outward []inventory.OutwardRecord) Totals {
	t := Totals{InwardCount: len(inward), OutwardCount: len(outward)}
	for _, rec := range inward {
		t.InwardQty += rec.Quantity
	}
	for _, rec := range outward {
		t.OutwardQty += rec.Quantity
	}
	return t
}
