// Package export renders generated reports as CSV and XLSX documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/ledger"
)

// WriteReportCSV emits the report header followed by one line per row,
// in column order.
func WriteReportCSV(w io.Writer, report ledger.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := make([]string, len(report.Columns))
	for i, col := range report.Columns {
		header[i] = col.Title
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	record := make([]string, len(report.Columns))
	for _, row := range report.Rows {
		for i, col := range report.Columns {
			record[i] = formatCell(row[col.Key])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case decimal.Decimal:
		return val.StringFixed(2)
	default:
		return fmt.Sprint(val)
	}
}
