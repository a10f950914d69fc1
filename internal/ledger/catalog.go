package ledger

import (
	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
)

// UnknownLabel replaces names of products, warehouses and parties that
// cannot be resolved.
const UnknownLabel = "Unknown"

// NoPartyLabel is shown for records that carry no party.
const NoPartyLabel = "-"

// Catalog resolves master data references by id.
type Catalog struct {
	products   map[string]masterdata.Product
	warehouses map[string]masterdata.Warehouse
	parties    map[string]masterdata.Party
}

// NewCatalog indexes master data. Later duplicates of an id win.
func NewCatalog(products []masterdata.Product, warehouses []masterdata.Warehouse, parties []masterdata.Party) *Catalog {
	c := &Catalog{
		products:   make(map[string]masterdata.Product, len(products)),
		warehouses: make(map[string]masterdata.Warehouse, len(warehouses)),
		parties:    make(map[string]masterdata.Party, len(parties)),
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	for _, w := range warehouses {
		c.warehouses[w.ID] = w
	}
	for _, p := range parties {
		c.parties[p.ID] = p
	}
	return c
}

// Product looks up a product.
func (c *Catalog) Product(id string) (masterdata.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// ProductName returns the product name or UnknownLabel.
func (c *Catalog) ProductName(id string) string {
	if p, ok := c.products[id]; ok && p.Name != "" {
		return p.Name
	}
	return UnknownLabel
}

// ProductSKU returns the SKU or an empty string for unknown products.
func (c *Catalog) ProductSKU(id string) string {
	return c.products[id].SKU
}

// WarehouseName returns the warehouse name or UnknownLabel.
func (c *Catalog) WarehouseName(id string) string {
	if w, ok := c.warehouses[id]; ok && w.Name != "" {
		return w.Name
	}
	return UnknownLabel
}

// PartyName returns the party name, NoPartyLabel when id is empty, or UnknownLabel.
func (c *Catalog) PartyName(id string) string {
	if id == "" {
		return NoPartyLabel
	}
	if p, ok := c.parties[id]; ok && p.Name != "" {
		return p.Name
	}
	return UnknownLabel
}
