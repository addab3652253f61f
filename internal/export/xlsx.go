package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// WriteXLSX writes a single-sheet workbook: title, metadata block, a blank
// row, then the bold header and data rows.
func WriteXLSX(w io.Writer, t Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	row := 1
	if t.Title != "" {
		if err := f.SetCellValue(sheetName, "A1", t.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A1", "A1", bold); err != nil {
			return err
		}
		row++
	}
	for _, m := range t.Meta {
		if err := setRow(f, row, []any{m.Key, m.Value}); err != nil {
			return err
		}
		row++
	}
	if row > 1 {
		row++
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := setRow(f, row, header); err != nil {
		return err
	}
	if len(t.Header) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(t.Header), row)
		if err := f.SetCellStyle(sheetName, first, last, bold); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(t.Header))
		if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
			return fmt.Errorf("sizing columns: %w", err)
		}
	}
	row++

	for _, r := range t.Rows {
		if err := setRow(f, row, r); err != nil {
			return err
		}
		row++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
