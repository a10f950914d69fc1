package ledger

import "sort"

const (
	// StatusOutOfStock tags positions with exactly zero stock.
	StatusOutOfStock = "Out of Stock"
	// StatusLowStock tags positions at or below their threshold.
	StatusLowStock = "Low Stock"
)

// LowStockRow is a position at or below its minimum stock threshold.
type LowStockRow struct {
	StockPosition
	Threshold int64
	Status    string
}

// LowStock selects positions with CurrentStock <= threshold (zero when the
// product has none configured), lowest stock first. Ties keep input order.
func LowStock(positions []StockPosition) []LowStockRow {
	rows := make([]LowStockRow, 0)
	for _, p := range positions {
		if p.CurrentStock > p.MinStock {
			continue
		}
		status := StatusLowStock
		if p.CurrentStock == 0 {
			status = StatusOutOfStock
		}
		rows = append(rows, LowStockRow{StockPosition: p, Threshold: p.MinStock, Status: status})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CurrentStock < rows[j].CurrentStock
	})
	return rows
}
