// Package fdi pulls the provincial foreign-direct-investment series out of
// the FDI workbook. It is joined to the PAPI records by province and year
// downstream.
package fdi

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/papi-extractor/internal/extractor"
)

// Row is one province-year FDI observation.
type Row struct {
	Province string
	Year     string

	// Value is nil when the cell held no number.
	Value *float64

	// Text keeps a non-blank cell that did not coerce ("N/A", "confidential").
	Text string
}

// Layout tells Extract where the table sits.
type Layout struct {
	// Column letters, e.g. "B".
	YearColumn     string
	ProvinceColumn string
	ValueColumn    string

	// SkipRows is the number of sheet rows above the first data row.
	SkipRows int
}

type columns struct {
	year, province, value int
}

func (l Layout) resolve() (columns, error) {
	var c columns
	for _, item := range []struct {
		name   string
		letter string
		dst    *int
	}{
		{"year", l.YearColumn, &c.year},
		{"province", l.ProvinceColumn, &c.province},
		{"value", l.ValueColumn, &c.value},
	} {
		n, err := excelize.ColumnNameToNumber(strings.TrimSpace(item.letter))
		if err != nil {
			return c, fmt.Errorf("invalid %s column %q: %w", item.name, item.letter, err)
		}
		*item.dst = n - 1
	}
	return c, nil
}

// Extract reads FDI rows from a grid. Rows without a province are skipped.
// Values go through extractor.Coerce; text that does not coerce is kept as is.
func Extract(grid [][]any, layout Layout) ([]Row, error) {
	cols, err := layout.resolve()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for r := layout.SkipRows; r < len(grid); r++ {
		line := grid[r]
		province, ok := cellAt(line, cols.province).(string)
		province = strings.TrimSpace(province)
		if !ok || province == "" {
			continue
		}
		row := Row{
			Province: province,
			Year:     formatYear(cellAt(line, cols.year)),
		}
		cell := cellAt(line, cols.value)
		if v, ok := extractor.Coerce(cell); ok {
			row.Value = &v
		} else if text, ok := cell.(string); ok {
			row.Text = strings.TrimSpace(text)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// formatYear renders whole-number years without a fraction (2015, not 2015.0).
func formatYear(cell any) string {
	switch v := cell.(type) {
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

func cellAt(row []any, idx int) any {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}
