package infra

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of an exported workbook. Row values are written
// as-is, so numbers stay numeric in the spreadsheet.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// WriteWorkbook renders sheets into an XLSX workbook and writes it to w.
// The first sheet becomes the active one.
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("xlsx: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E8E8E8"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("xlsx: new sheet %q: %w", sh.Name, err)
		}

		header := make([]any, len(sh.Header))
		for j, h := range sh.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
			return fmt.Errorf("xlsx: header %q: %w", sh.Name, err)
		}
		if err := f.SetRowStyle(sh.Name, 1, 1, bold); err != nil {
			return fmt.Errorf("xlsx: header style %q: %w", sh.Name, err)
		}

		for r, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
				return fmt.Errorf("xlsx: row %d of %q: %w", r+2, sh.Name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}
