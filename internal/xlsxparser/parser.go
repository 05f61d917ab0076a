// =============================================================================
// PAPI Extractor - Workbook Reader
// =============================================================================
//
// This module opens the PAPI workbook (.xlsx/.xlsm) and exposes each sheet as
// a raw grid of cells without header assumptions. Cell types come from the
// workbook itself, so numbers stay numbers and text stays text:
//
//   | workbook cell type          | grid value            |
//   |-----------------------------|-----------------------|
//   | number (or untyped)         | float64               |
//   | shared / inline string      | string                |
//   | formula with a text result  | string                |
//   | boolean                     | bool                  |
//   | empty, date, error          | nil                   |
//
// Grid row and column indices are 0-based and match the sheet positions
// (row r of the grid is sheet row r+1), including empty rows in between.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an open workbook. It is read-only.
type Workbook struct {
	// Path is the file the workbook was opened from.
	Path string

	file *excelize.File
}

// Open opens a workbook file.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{Path: path, file: f}, nil
}

// FromFile wraps an already open excelize file.
func FromFile(f *excelize.File) *Workbook {
	return &Workbook{file: f}
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns every sheet name in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Grid returns the sheet as a 2-D grid of typed cells.
func (w *Workbook) Grid(sheet string) ([][]any, error) {
	if idx, err := w.file.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q does not exist", sheet)
	}

	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	grid := make([][]any, len(rows))
	for r, row := range rows {
		cells := make([]any, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := w.file.GetCellType(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("failed to read type of %s: %w", cell, err)
			}
			cells[c] = convertCell(typ, raw)
		}
		grid[r] = cells
	}
	return grid, nil
}

// convertCell maps a raw cell value to its grid value.
func convertCell(typ excelize.CellType, raw string) any {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return raw
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE" || raw == "true"
	default:
		// Dates and error values (#N/A, #DIV/0!) carry no score.
		return nil
	}
}
