package ledger

import (
	"errors"
	"fmt"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/inventory"
	"github.com/V4Varunstar/aura-inventory-sub002/internal/masterdata"
)

// ReportType names a projection.
type ReportType string

const (
	ReportInward        ReportType = "inward"
	ReportOutward       ReportType = "outward"
	ReportStock         ReportType = "stock"
	ReportLowStock      ReportType = "lowStock"
	ReportPartyWise     ReportType = "partyWise"
	ReportDateWise      ReportType = "dateWise"
	ReportValueAnalysis ReportType = "valueAnalysis"
)

// ReportTypes lists every supported projection.
var ReportTypes = []ReportType{
	ReportInward,
	ReportOutward,
	ReportStock,
	ReportLowStock,
	ReportPartyWise,
	ReportDateWise,
	ReportValueAnalysis,
}

// ErrUnknownReportType is returned for unsupported report names.
var ErrUnknownReportType = errors.New("ledger: unknown report type")

// ParseReportType validates a report name.
func ParseReportType(raw string) (ReportType, error) {
	for _, t := range ReportTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReportType, raw)
}

// Dataset is an immutable snapshot of one tenant's store, as fetched.
// Records may still carry soft-deleted rows.
type Dataset struct {
	Products   []masterdata.Product      `json:"products"`
	Warehouses []masterdata.Warehouse    `json:"warehouses"`
	Parties    []masterdata.Party        `json:"parties"`
	Inward     []inventory.InwardRecord  `json:"inward"`
	Outward    []inventory.OutwardRecord `json:"outward"`
}

// Active returns a copy without soft-deleted records.
func (d Dataset) Active() Dataset {
	d.Inward = ActiveInward(d.Inward)
	d.Outward = ActiveOutward(d.Outward)
	return d
}

// Catalog indexes the dataset's master data.
func (d Dataset) Catalog() *Catalog {
	return NewCatalog(d.Products, d.Warehouses, d.Parties)
}

// PositionsFor computes all-time stock positions of the active records and
// keeps those matching the warehouse and product criteria of f.
func PositionsFor(data Dataset, f Filter) []StockPosition {
	active := data.Active()
	return computePositions(active.Catalog(), active.Inward, active.Outward).Filter(f)
}

// Column describes one field of a report row.
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Row is a plain key-value record keyed by Column.Key.
type Row map[string]any

// Report is a generated projection ready for display or export.
type Report struct {
	Type    ReportType `json:"type"`
	Columns []Column   `json:"columns"`
	Rows    []Row      `json:"rows"`
}

// GenerateReport runs one projection over the dataset. It is a pure function
// of its inputs; an empty match yields a report with no rows.
func GenerateReport(typ ReportType, f Filter, data Dataset) (Report, error) {
	active := data.Active()
	catalog := active.Catalog()
	inward := FilterInward(active.Inward, f)
	outward := FilterOutward(active.Outward, f)

	report := Report{Type: typ, Columns: columnsFor(typ), Rows: []Row{}}
	switch typ {
	case ReportInward:
		for _, r := range InwardListing(catalog, inward, f.location()) {
			report.Rows = append(report.Rows, r.row())
		}
	case ReportOutward:
		for _, r := range OutwardListing(catalog, outward, f.location()) {
			report.Rows = append(report.Rows, r.row())
		}
	case ReportStock:
		for _, p := range computePositions(catalog, active.Inward, active.Outward).Filter(f) {
			report.Rows = append(report.Rows, positionRow(p))
		}
	case ReportLowStock:
		for _, r := range LowStock(computePositions(catalog, active.Inward, active.Outward).Filter(f)) {
			report.Rows = append(report.Rows, r.row())
		}
	case ReportPartyWise:
		for _, r := range PartyWise(catalog, active.Parties, inward, outward) {
			report.Rows = append(report.Rows, r.row())
		}
	case ReportDateWise:
		for _, r := range DateWise(inward, outward, f.location()) {
			report.Rows = append(report.Rows, r.row())
		}
	case ReportValueAnalysis:
		positions := computePositions(catalog, active.Inward, active.Outward).Filter(f)
		report.Rows = append(report.Rows, AnalyseValue(catalog, inward, outward, positions).row())
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownReportType, typ)
	}
	return report, nil
}
