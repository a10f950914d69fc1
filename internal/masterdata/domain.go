package masterdata

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PartyType classifies a counterparty.
type PartyType string

const (
	// PartyTypeCustomer buys from the company.
	PartyTypeCustomer PartyType = "Customer"
	// PartyTypeSupplier sells to the company.
	PartyTypeSupplier PartyType = "Supplier"
	// PartyTypeBoth acts as customer and supplier.
	PartyTypeBoth PartyType = "Both"
)

var titleCaser = cases.Title(language.English)

// ParsePartyType normalises free-form party types coming from the store.
// Unrecognised values fall back to PartyTypeBoth.
func ParsePartyType(raw string) PartyType {
	if t, ok := LookupPartyType(raw); ok {
		return t
	}
	return PartyTypeBoth
}

// LookupPartyType matches raw against the known party types, ignoring case.
func LookupPartyType(raw string) (PartyType, bool) {
	switch t := PartyType(titleCaser.String(strings.ToLower(strings.TrimSpace(raw)))); t {
	case PartyTypeCustomer, PartyTypeSupplier, PartyTypeBoth:
		return t, true
	}
	return "", false
}

// Product represents a sellable item tracked in stock.
type Product struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	SKU       string          `json:"sku"`
	EAN       string          `json:"ean"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"cost_price"`
	// MinStock is the low-stock threshold; nil means no threshold configured.
	MinStock  *int64    `json:"min_stock,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Threshold returns the configured minimum stock or zero.
func (p Product) Threshold() int64 {
	if p.MinStock == nil {
		return 0
	}
	return *p.MinStock
}

// Warehouse represents a stock location.
type Warehouse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}

// Party represents a customer or supplier.
type Party struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Type      PartyType `json:"type"`
}
