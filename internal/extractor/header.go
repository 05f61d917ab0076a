package extractor

import "strings"

// DefaultAnchor is the literal header text that marks the header row.
const DefaultAnchor = "Province"

// HeaderPosition is where the anchor cell was found. Column is informational;
// columns are matched by name downstream.
type HeaderPosition struct {
	Row    int
	Column int
}

// LocateHeader scans the grid row by row, left to right, for the first text
// cell whose trimmed value equals anchor exactly (case-sensitive). The row
// holding it is the header row. ok is false when no such cell exists.
func LocateHeader(grid [][]any, anchor string) (HeaderPosition, bool) {
	for r, row := range grid {
		for c, cell := range row {
			s, isText := cell.(string)
			if isText && strings.TrimSpace(s) == anchor {
				return HeaderPosition{Row: r, Column: c}, true
			}
		}
	}
	return HeaderPosition{}, false
}
