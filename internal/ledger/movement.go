package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
)

// PartyRow summarises the movements booked against one party.
type PartyRow struct {
	PartyID      string
	PartyName    string
	PartyType    masterdata.PartyType
	InwardQty    int64
	InwardValue  decimal.Decimal
	OutwardQty   int64
	OutwardValue decimal.Decimal
	NetQty       int64
	NetValue     decimal.Decimal
	Transactions int
}

// PartyWise groups records by party, in the order of parties. Parties without
// any record are omitted.
func PartyWise(catalog *Catalog, parties []masterdata.Party, inward []inventory.InwardRecord, outward []inventory.OutwardRecord) []PartyRow {
	type acc struct {
		inQty, outQty     int64
		inValue, outValue decimal.Decimal
		count             int
	}
	byParty := make(map[string]*acc)
	get := func(id string) *acc {
		a, ok := byParty[id]
		if !ok {
			a = &acc{inValue: decimal.Zero, outValue: decimal.Zero}
			byParty[id] = a
		}
		return a
	}
	for _, rec := range inward {
		if rec.PartyID == "" {
			continue
		}
		a := get(rec.PartyID)
		a.inQty += rec.Quantity
		a.inValue = a.inValue.Add(catalog.unitCost(rec.UnitCost, rec.ProductID).Mul(decimal.NewFromInt(rec.Quantity)))
		a.count++
	}
	for _, rec := range outward {
		if rec.PartyID == "" {
			continue
		}
		a := get(rec.PartyID)
		a.outQty += rec.Quantity
		a.outValue = a.outValue.Add(catalog.unitCost(rec.UnitCost, rec.ProductID).Mul(decimal.NewFromInt(rec.Quantity)))
		a.count++
	}

	rows := make([]PartyRow, 0)
	seen := make(map[string]bool, len(parties))
	for _, party := range parties {
		if seen[party.ID] {
			continue
		}
		seen[party.ID] = true
		a, ok := byParty[party.ID]
		if !ok || a.count == 0 {
			continue
		}
		rows = append(rows, PartyRow{
			PartyID:      party.ID,
			PartyName:    catalog.PartyName(party.ID),
			PartyType:    party.Type,
			InwardQty:    a.inQty,
			InwardValue:  a.inValue,
			OutwardQty:   a.outQty,
			OutwardValue: a.outValue,
			NetQty:       a.inQty - a.outQty,
			NetValue:     a.inValue.Sub(a.outValue),
			Transactions: a.count,
		})
	}
	return rows
}

// DateRow summarises movements of one calendar day.
type DateRow struct {
	Date         string
	InwardQty    int64
	OutwardQty   int64
	NetMovement  int64
	InwardCount  int
	OutwardCount int
	Transactions int
}

// DateWise buckets records by the calendar day of their effective date in loc,
// newest day first.
func DateWise(inward []inventory.InwardRecord, outward []inventory.OutwardRecord, loc *time.Location) []DateRow {
	byDate := make(map[string]*DateRow)
	get := func(day string) *DateRow {
		row, ok := byDate[day]
		if !ok {
			row = &DateRow{Date: day}
			byDate[day] = row
		}
		return row
	}
	for _, rec := range inward {
		row := get(dateBucket(rec.EffectiveDate(), loc))
		row.InwardQty += rec.Quantity
		row.InwardCount++
	}
	for _, rec := range outward {
		row := get(dateBucket(rec.EffectiveDate(), loc))
		row.OutwardQty += rec.Quantity
		row.OutwardCount++
	}
	rows := make([]DateRow, 0, len(byDate))
	for _, row := range byDate {
		row.NetMovement = row.InwardQty - row.OutwardQty
		row.Transactions = row.InwardCount + row.OutwardCount
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})
	return rows
}
