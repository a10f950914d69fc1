package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
)

// ResolveUnitCost picks the cost for a movement: the record-level override
// wins, then the product's current cost price, then zero.
func ResolveUnitCost(override *decimal.Decimal, product *masterdata.Product) decimal.Decimal {
	if override != nil {
		return *override
	}
	if product != nil {
		return product.CostPrice
	}
	return decimal.Zero
}

// AveragePrice divides value by qty, returning zero when qty is not positive.
func AveragePrice(value decimal.Decimal, qty int64) decimal.Decimal {
	if qty <= 0 {
		return decimal.Zero
	}
	return value.Div(decimal.NewFromInt(qty))
}

func (c *Catalog) unitCost(override *decimal.Decimal, productID string) decimal.Decimal {
	if p, ok := c.products[productID]; ok {
		return ResolveUnitCost(override, &p)
	}
	return ResolveUnitCost(override, nil)
}

// valuationCost is the product's current cost price, ignoring record overrides.
func (c *Catalog) valuationCost(productID string) decimal.Decimal {
	return c.unitCost(nil, productID)
}
