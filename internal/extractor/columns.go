package extractor

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/papi-extractor/internal/schema"
)

// Column is a header-row cell that carries a name.
type Column struct {
	Index  int
	Header string
}

// ColumnMapping is the per-sheet view of the header row. It is rebuilt for
// every sheet and never persisted.
type ColumnMapping struct {
	// Named holds every column whose header is non-blank text, left to right.
	// Columns with blank or non-text headers take no further part.
	Named []Column

	// ProvinceColumn is the index of the province column, -1 when absent.
	ProvinceColumn int

	// Direct maps a canonical dimension name to the column whose header
	// matches it (case-insensitive). First such column wins.
	Direct map[string]int

	// Groups maps a canonical dimension name to its sub-indicator columns,
	// in header order. A dimension may have both a group and a Direct column;
	// the group is then used only for rows whose direct cell has no value.
	Groups map[string][]Column

	// Ignored lists named columns that are neither direct nor sub-indicators.
	Ignored []Column

	// Dimensions is the year's canonical schema the mapping was built for.
	Dimensions []schema.Dimension
}

// MapColumns classifies the header row against the year's dimensions. Each
// named column is, in order of precedence:
//
//  1. a direct match: its trimmed header equals a dimension name (ignoring
//     case) or provinceHeader (exactly)
//  2. a sub-indicator: its header starts with "N." for a dimension N of the
//     schema (see SubIndicatorDimension)
//  3. ignored
func MapColumns(header []any, dims []schema.Dimension, provinceHeader string) ColumnMapping {
	m := ColumnMapping{
		ProvinceColumn: -1,
		Direct:         make(map[string]int),
		Groups:         make(map[string][]Column),
		Dimensions:     dims,
	}

	for idx, cell := range header {
		text, ok := cell.(string)
		if !ok {
			continue
		}
		name := strings.TrimSpace(text)
		if name == "" {
			continue
		}
		col := Column{Index: idx, Header: name}
		m.Named = append(m.Named, col)

		if dim, ok := directDimension(name, dims); ok {
			if _, taken := m.Direct[dim.Name]; !taken {
				m.Direct[dim.Name] = idx
			}
			continue
		}
		if name == strings.TrimSpace(provinceHeader) {
			if m.ProvinceColumn < 0 {
				m.ProvinceColumn = idx
			}
			continue
		}
		if dim, ok := SubIndicatorDimension(name, dims); ok {
			m.Groups[dim.Name] = append(m.Groups[dim.Name], col)
			continue
		}
		m.Ignored = append(m.Ignored, col)
	}

	return m
}

func directDimension(header string, dims []schema.Dimension) (schema.Dimension, bool) {
	for _, d := range dims {
		if strings.EqualFold(header, d.Name) {
			return d, true
		}
	}
	return schema.Dimension{}, false
}

// SubIndicatorDimension reports which dimension a sub-indicator header feeds.
// A header belongs to dimension N when it starts with "N." (N in 1..8) and
// the schema has a "Dimension N: ..." entry. Prefixes are tried from 1 to 8
// and the first hit wins, so a header feeds at most one dimension.
//
// The match is purely textual: any header that happens to start with a
// digit and a dot ("3. Notes") is treated as a sub-indicator.
func SubIndicatorDimension(header string, dims []schema.Dimension) (schema.Dimension, bool) {
	header = strings.TrimSpace(header)
	for n := 1; n <= schema.MaxDimension; n++ {
		if !strings.HasPrefix(header, strconv.Itoa(n)+".") {
			continue
		}
		for _, d := range dims {
			if d.Number == n {
				return d, true
			}
		}
	}
	return schema.Dimension{}, false
}
