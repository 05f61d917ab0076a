// =============================================================================
// PAPI Extractor - CSV Writer Module
// =============================================================================
//
// This module writes the provincial FDI series as a flat CSV table:
//
//   Province,Year,FDI
//   Hanoi,2015,1234.5
//   Bac Ninh,2016,
//   Hue,2017,N/A
//
// A value that is not a number keeps its sheet text; a blank one is written
// as an empty field. The file is replaced on
// every run and written atomically.
//
// =============================================================================

package csvwriter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/ginjaninja78/papi-extractor/internal/fdi"
	"github.com/ginjaninja78/papi-extractor/pkg/utils"
)

// Header is the first line of the FDI table.
var Header = []string{"Province", "Year", "FDI"}

// Generate renders rows as CSV with a header line.
func Generate(rows []fdi.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, row := range rows {
		value := row.Text
		if row.Value != nil {
			value = strconv.FormatFloat(*row.Value, 'f', -1, 64)
		}
		if err := w.Write([]string{row.Province, row.Year, value}); err != nil {
			return nil, fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFDI writes rows to path, creating parent directories as needed.
func WriteFDI(path string, rows []fdi.Row) error {
	data, err := Generate(rows)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
