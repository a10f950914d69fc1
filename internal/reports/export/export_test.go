package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/ledger"
)

func sampleReport() ledger.Report {
	return ledger.Report{
		Type: ledger.ReportStock,
		Columns: []ledger.Column{
			{Key: "product", Title: "Product"},
			{Key: "current_stock", Title: "Current Stock"},
			{Key: "total_value", Title: "Total Value"},
		},
		Rows: []ledger.Row{
			{"product": "Rose Serum, 30ml", "current_stock": int64(30), "total_value": decimal.RequireFromString("300")},
			{"product": "Clay Mask", "current_stock": int64(-5), "total_value": decimal.RequireFromString("-37.5")},
		},
	}
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportCSV(&buf, sampleReport()))
	require.Equal(t, "Product,Current Stock,Total Value\n\"Rose Serum, 30ml\",30,300.00\nClay Mask,-5,-37.50\n", buf.String())
}

func TestWriteReportCSVEmptyRows(t *testing.T) {
	report := sampleReport()
	report.Rows = nil
	var buf bytes.Buffer
	require.NoError(t, WriteReportCSV(&buf, report))
	require.Equal(t, "Product,Current Stock,Total Value\n", buf.String())
}

func TestWriteReportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Product", "Current Stock", "Total Value"}, rows[0])
	require.Equal(t, "Rose Serum, 30ml", rows[1][0])
	require.Equal(t, "-5", rows[2][1])
	require.Equal(t, "-37.5", rows[2][2])
}
