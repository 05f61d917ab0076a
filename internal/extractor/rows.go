package extractor

import (
	"strings"

	"github.com/ginjaninja78/papi-extractor/internal/types"
)

// DefaultLegendMarkers flag legend and footer rows by their province cell.
var DefaultLegendMarkers = []string{"RANGE", "ITEM", "ATTRIBUTE"}

// ProvinceName returns the trimmed province of a data row. ok is false for
// rows that are not data: a blank or non-text province, or one containing
// any marker (case-insensitive substring).
func ProvinceName(cell any, markers []string) (string, bool) {
	text, isText := cell.(string)
	if !isText {
		return "", false
	}
	name := strings.TrimSpace(text)
	if name == "" {
		return "", false
	}
	upper := strings.ToUpper(name)
	for _, marker := range markers {
		if marker != "" && strings.Contains(upper, strings.ToUpper(marker)) {
			return "", false
		}
	}
	return name, true
}

// BuildRecord turns one data row into a record. ok is false when the row is
// filtered out. A row that passes the filter always yields a record carrying
// every dimension of the mapping, nil where no value could be resolved.
//
// Per dimension: the direct column's value if the dimension has one and the
// cell coerces, otherwise the sum of the group members that coerce, otherwise
// nil. A sum that overflows is nil.
func BuildRecord(row []any, m ColumnMapping, year string, markers []string) (types.Record, bool) {
	province, ok := ProvinceName(cellAt(row, m.ProvinceColumn), markers)
	if !ok {
		return types.Record{}, false
	}

	rec := types.Record{
		Province: province,
		Year:     year,
		Scores:   make([]types.Score, 0, len(m.Dimensions)),
	}
	for _, dim := range m.Dimensions {
		rec.Scores = append(rec.Scores, types.Score{
			Dimension: dim.Name,
			Value:     dimensionValue(row, m, dim.Name),
		})
	}
	return rec, true
}

func dimensionValue(row []any, m ColumnMapping, name string) *float64 {
	if idx, ok := m.Direct[name]; ok {
		if v, ok := Coerce(cellAt(row, idx)); ok {
			return types.Float(v)
		}
	}

	members := m.Groups[name]
	if len(members) == 0 {
		return nil
	}
	var (
		sum     float64
		counted int
	)
	for _, col := range members {
		if v, ok := Coerce(cellAt(row, col.Index)); ok {
			sum += v
			counted++
		}
	}
	if counted == 0 {
		return nil
	}
	if _, ok := finite(sum); !ok {
		return nil
	}
	return types.Float(sum)
}

// Aggregate builds records for every row below the header row.
func Aggregate(grid [][]any, headerRow int, m ColumnMapping, year string, markers []string) (records []types.Record, filtered int) {
	for r := headerRow + 1; r < len(grid); r++ {
		rec, ok := BuildRecord(grid[r], m, year, markers)
		if !ok {
			filtered++
			continue
		}
		records = append(records, rec)
	}
	return records, filtered
}

func cellAt(row []any, idx int) any {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}
