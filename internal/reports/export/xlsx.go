package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/V4Varunstar/aura-inventory-sub002/internal/ledger"
)

const sheetName = "Report"

// ContentTypeXLSX is the media type of WriteReportXLSX output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteReportXLSX renders the report into a single-sheet workbook. Numbers
// stay numeric so spreadsheets can sum them.
func WriteReportXLSX(w io.Writer, report ledger.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, col := range report.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, col.Title); err != nil {
			return err
		}
	}
	if len(report.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(report.Columns), 1)
		if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
			return err
		}
	}
	for r, row := range report.Rows {
		for c, col := range report.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(row[col.Key])); err != nil {
				return fmt.Errorf("export: cell %s: %w", cell, err)
			}
		}
	}
	return f.Write(w)
}

func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return val.Round(2).InexactFloat64()
	default:
		return val
	}
}
