package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/papi-extractor/internal/types"
)

func TestProvinceName(t *testing.T) {
	tests := []struct {
		name   string
		cell   any
		want   string
		wantOK bool
	}{
		{name: "plain", cell: "Hanoi", want: "Hanoi", wantOK: true},
		{name: "trimmed", cell: "  Ha Giang ", want: "Ha Giang", wantOK: true},
		{name: "range legend", cell: "Range 1-5", wantOK: false},
		{name: "range upper", cell: "RANGE (1-10)", wantOK: false},
		{name: "item legend", cell: "Item description", wantOK: false},
		{name: "attribute legend", cell: "attributes", wantOK: false},
		{name: "marker inside word", cell: "Strange Province", wantOK: false},
		{name: "blank", cell: "   ", wantOK: false},
		{name: "nil", cell: nil, wantOK: false},
		{name: "number", cell: 12.0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ProvinceName(tt.cell, DefaultLegendMarkers)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildRecordExample(t *testing.T) {
	dims := dimsFor(t, "2018")
	header := []any{"", "Province", "1. Sub A", "1. Sub B", "Dimension 2: Transparency of Local Decision-making"}
	m := MapColumns(header, dims, DefaultAnchor)

	rec, ok := BuildRecord([]any{"", "Hanoi", 3.0, 4.0, 7.5}, m, "2018", DefaultLegendMarkers)
	require.True(t, ok)

	assert.Equal(t, "Hanoi", rec.Province)
	assert.Equal(t, "2018", rec.Year)
	require.Len(t, rec.Scores, len(dims))
	for i, d := range dims {
		assert.Equal(t, d.Name, rec.Scores[i].Dimension)
	}

	assertScore(t, rec, "Dimension 1: Participation", 7)
	assertScore(t, rec, "Dimension 2: Transparency of Local Decision-making", 7.5)
	for _, d := range dims[2:] {
		v, present := rec.Score(d.Name)
		assert.True(t, present)
		assert.Nil(t, v, d.Name)
	}
}

func TestBuildRecordFiltersLegendRows(t *testing.T) {
	m := MapColumns([]any{"Province", "1. Sub A"}, dimsFor(t, "2018"), DefaultAnchor)

	_, ok := BuildRecord([]any{"RANGE (1-10)", 5.0}, m, "2018", DefaultLegendMarkers)
	assert.False(t, ok)

	_, ok = BuildRecord([]any{}, m, "2018", DefaultLegendMarkers)
	assert.False(t, ok)
}

func TestBuildRecordGroupSums(t *testing.T) {
	dims := dimsFor(t, "2016")
	m := MapColumns([]any{"Province", "1. A", "1. B", "1. C", "3. A", "3. B"}, dims, DefaultAnchor)

	tests := []struct {
		name  string
		row   []any
		dim1  *float64
		dim3  *float64
	}{
		{name: "all numeric", row: []any{"X", 1.0, 2.0, 3.0, 0.5, 0.25}, dim1: types.Float(6), dim3: types.Float(0.75)},
		{name: "failed coercion adds nothing", row: []any{"X", 1.0, "N/A", "2 pts", nil, 0.0}, dim1: types.Float(3), dim3: types.Float(0)},
		{name: "none coerce is null", row: []any{"X", nil, "", "n/a", "-", nil}},
		{name: "short row", row: []any{"X", 4.0}, dim1: types.Float(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := BuildRecord(tt.row, m, "2016", DefaultLegendMarkers)
			require.True(t, ok)
			v1, _ := rec.Score("Dimension 1: Participation")
			v3, _ := rec.Score("Dimension 3: Vertical Accountability")
			assert.Equal(t, tt.dim1, v1)
			assert.Equal(t, tt.dim3, v3)
		})
	}
}

func TestBuildRecordGroupOrderIndependent(t *testing.T) {
	dims := dimsFor(t, "2019")
	values := []float64{1.5, 2.25, 4, 0.125}

	forward := MapColumns([]any{"Province", "4. a", "4. b", "4. c", "4. d"}, dims, DefaultAnchor)
	backward := MapColumns([]any{"Province", "4. d", "4. c", "4. b", "4. a"}, dims, DefaultAnchor)

	recF, ok := BuildRecord([]any{"P", values[0], values[1], values[2], values[3]}, forward, "2019", DefaultLegendMarkers)
	require.True(t, ok)
	recB, ok := BuildRecord([]any{"P", values[3], values[2], values[1], values[0]}, backward, "2019", DefaultLegendMarkers)
	require.True(t, ok)

	assert.Equal(t, recF, recB)
}

func TestBuildRecordDirectColumnAndGroup(t *testing.T) {
	dims := dimsFor(t, "2018")
	m := MapColumns([]any{"Province", "Dimension 1: Participation", "1. Sub A", "1. Sub B"}, dims, DefaultAnchor)

	tests := []struct {
		name string
		row  []any
		want *float64
	}{
		{name: "direct value wins", row: []any{"Hanoi", 5.0, 3.0, 4.0}, want: types.Float(5)},
		{name: "direct zero wins", row: []any{"Hanoi", 0.0, 3.0, 4.0}, want: types.Float(0)},
		{name: "blank direct uses group", row: []any{"Hanoi", nil, 3.0, 4.0}, want: types.Float(7)},
		{name: "uncoercible direct uses group", row: []any{"Hanoi", "N/A", 3.0, "1.5"}, want: types.Float(4.5)},
		{name: "short row uses group", row: []any{"Hanoi"}},
		{name: "nothing coerces", row: []any{"Hanoi", "", "-", nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := BuildRecord(tt.row, m, "2018", DefaultLegendMarkers)
			require.True(t, ok)
			v, present := rec.Score("Dimension 1: Participation")
			assert.True(t, present)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestBuildRecordOverflowingSumIsNull(t *testing.T) {
	m := MapColumns([]any{"Province", "1. Sub A", "1. Sub B"}, dimsFor(t, "2018"), DefaultAnchor)

	rec, ok := BuildRecord([]any{"Hanoi", 1.7e308, 1.7e308}, m, "2018", DefaultLegendMarkers)
	require.True(t, ok)
	v, present := rec.Score("Dimension 1: Participation")
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestAggregate(t *testing.T) {
	dims := dimsFor(t, "2017")
	grid := [][]any{
		{"PAPI 2017"},
		{"No.", "Province", "Dimension 1: Participation"},
		{1.0, "An Giang", 5.1},
		{2.0, "Ba Ria-Vung Tau", "4.9"},
		{nil, nil, nil},
		{nil, "Range (min-max)", "1-10"},
		{nil, "Item attribute", nil},
	}
	m := MapColumns(grid[1], dims, DefaultAnchor)

	records, filtered := Aggregate(grid, 1, m, "2017", DefaultLegendMarkers)
	require.Len(t, records, 2)
	assert.Equal(t, 3, filtered)
	assert.Equal(t, "An Giang", records[0].Province)
	assertScore(t, records[1], "Dimension 1: Participation", 4.9)
}

func assertScore(t *testing.T, rec types.Record, dimension string, want float64) {
	t.Helper()
	v, ok := rec.Score(dimension)
	require.True(t, ok, dimension)
	require.NotNil(t, v, dimension)
	assert.Equal(t, want, *v, dimension)
}
