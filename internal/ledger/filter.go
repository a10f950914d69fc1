package ledger

import (
	"time"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
)

// DateLayout is the calendar date format used for filters and date buckets.
const DateLayout = "2006-01-02"

// Filter narrows record sets before aggregation. Zero values disable a criterion;
// all set criteria must hold (logical AND).
type Filter struct {
	StartDate   time.Time
	EndDate     time.Time
	WarehouseID string
	ProductID   string
	PartyID     string
	// Location is used for end-of-day and date bucketing; nil means UTC.
	Location *time.Location
}

// EndOfDay returns the last instant of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func (f Filter) location() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

// Bounds returns the inclusive [from, to] range; a zero bound is open.
func (f Filter) Bounds() (from, to time.Time) {
	if !f.StartDate.IsZero() {
		from = StartOfDay(f.StartDate, f.location())
	}
	if !f.EndDate.IsZero() {
		to = EndOfDay(f.EndDate, f.location())
	}
	return from, to
}

// WithoutDates returns a copy keeping only the equality criteria.
func (f Filter) WithoutDates() Filter {
	f.StartDate = time.Time{}
	f.EndDate = time.Time{}
	return f
}

func (f Filter) inRange(at time.Time) bool {
	from, to := f.Bounds()
	if !from.IsZero() && at.Before(from) {
		return false
	}
	if !to.IsZero() && at.After(to) {
		return false
	}
	return true
}

func (f Filter) matches(at time.Time, warehouseID, productID, partyID string) bool {
	if f.WarehouseID != "" && f.WarehouseID != warehouseID {
		return false
	}
	if f.ProductID != "" && f.ProductID != productID {
		return false
	}
	if f.PartyID != "" && f.PartyID != partyID {
		return false
	}
	return f.inRange(at)
}

// MatchInward reports whether the record satisfies every criterion.
func (f Filter) MatchInward(rec inventory.InwardRecord) bool {
	return f.matches(rec.EffectiveDate(), rec.WarehouseID, rec.ProductID, rec.PartyID)
}

// MatchOutward reports whether the record satisfies every criterion.
func (f Filter) MatchOutward(rec inventory.OutwardRecord) bool {
	return f.matches(rec.EffectiveDate(), rec.WarehouseID, rec.ProductID, rec.PartyID)
}

// MatchPosition applies the warehouse and product criteria to a position key.
func (f Filter) MatchPosition(key PositionKey) bool {
	if f.WarehouseID != "" && f.WarehouseID != key.WarehouseID {
		return false
	}
	if f.ProductID != "" && f.ProductID != key.ProductID {
		return false
	}
	return true
}

// FilterInward keeps matching records in input order.
func FilterInward(records []inventory.InwardRecord, f Filter) []inventory.InwardRecord {
	out := make([]inventory.InwardRecord, 0, len(records))
	for _, rec := range records {
		if f.MatchInward(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterOutward keeps matching records in input order.
func FilterOutward(records []inventory.OutwardRecord, f Filter) []inventory.OutwardRecord {
	out := make([]inventory.OutwardRecord, 0, len(records))
	for _, rec := range records {
		if f.MatchOutward(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// ActiveInward drops soft-deleted records.
func ActiveInward(records []inventory.InwardRecord) []inventory.InwardRecord {
	out := make([]inventory.InwardRecord, 0, len(records))
	for _, rec := range records {
		if !rec.IsDeleted {
			out = append(out, rec)
		}
	}
	return out
}

// ActiveOutward drops soft-deleted records.
func ActiveOutward(records []inventory.OutwardRecord) []inventory.OutwardRecord {
	out := make([]inventory.OutwardRecord, 0, len(records))
	for _, rec := range records {
		if !rec.IsDeleted {
			out = append(out, rec)
		}
	}
	return out
}

func dateBucket(at time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return at.In(loc).Format(DateLayout)
}
