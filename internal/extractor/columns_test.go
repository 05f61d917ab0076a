package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/papi-extractor/internal/schema"
)

func dimsFor(t *testing.T, year string) []schema.Dimension {
	t.Helper()
	dims, err := schema.Default().Lookup(year)
	require.NoError(t, err)
	return dims
}

func TestSubIndicatorDimension(t *testing.T) {
	dims2018 := dimsFor(t, "2018")
	dims2015 := dimsFor(t, "2015")

	tests := []struct {
		name   string
		header string
		dims   []schema.Dimension
		want   int
		wantOK bool
	}{
		{name: "dimension 1", header: "1. Civic knowledge", dims: dims2018, want: 1, wantOK: true},
		{name: "dimension 8", header: "8.E-governance use", dims: dims2018, want: 8, wantOK: true},
		{name: "nested numbering", header: "3.2 Vertical accountability", dims: dims2018, want: 3, wantOK: true},
		{name: "leading space", header: "  5. Certification", dims: dims2018, want: 5, wantOK: true},
		{name: "dimension absent from year", header: "7. Environment", dims: dims2015, wantOK: false},
		{name: "dimension 0", header: "0. Overall", dims: dims2018, wantOK: false},
		{name: "dimension 9", header: "9. Other", dims: dims2018, wantOK: false},
		{name: "two digits", header: "10. Note", dims: dims2018, wantOK: false},
		{name: "no dot", header: "1 Civic knowledge", dims: dims2018, wantOK: false},
		{name: "comma", header: "1, Civic knowledge", dims: dims2018, wantOK: false},
		{name: "digit not at start", header: "Sub 1. Civic", dims: dims2018, wantOK: false},
		{name: "text", header: "Province", dims: dims2018, wantOK: false},
		{name: "empty", header: "", dims: dims2018, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SubIndicatorDimension(tt.header, tt.dims)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.Number)
			}
		})
	}
}

func TestSubIndicatorDimensionEveryPrefix(t *testing.T) {
	dims := dimsFor(t, "2023")
	for _, d := range dims {
		got, ok := SubIndicatorDimension(d.Name[len("Dimension "):len("Dimension ")+1]+". x", dims)
		require.True(t, ok, d.Name)
		assert.Equal(t, d.Name, got.Name)
	}
}

func TestMapColumns(t *testing.T) {
	dims := dimsFor(t, "2018")
	header := []any{
		"",                         // 0 blank
		"Province",                 // 1
		"1. Sub A",                 // 2
		"1. Sub B",                 // 3
		"dimension 2: transparency of local decision-making", // 4 direct, other case
		"2. Sub backing direct",    // 5
		42.0,                       // 6 numeric header
		"Notes",                    // 7 ignored
		nil,                        // 8
		"  7. Env  ",               // 9
	}

	m := MapColumns(header, dims, DefaultAnchor)

	assert.Equal(t, 1, m.ProvinceColumn)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 7, 9}, indices(m.Named))
	assert.Equal(t, map[string]int{"Dimension 2: Transparency of Local Decision-making": 4}, m.Direct)

	require.Len(t, m.Groups, 3)
	assert.Equal(t, []int{2, 3}, indices(m.Groups["Dimension 1: Participation"]))
	assert.Equal(t, []int{5}, indices(m.Groups["Dimension 2: Transparency of Local Decision-making"]))
	assert.Equal(t, []int{9}, indices(m.Groups["Dimension 7: Environmental Governance"]))

	assert.Equal(t, []int{7}, indices(m.Ignored))
	assert.Equal(t, "7. Env", m.Groups["Dimension 7: Environmental Governance"][0].Header)
}

func TestMapColumnsFirstDirectColumnWins(t *testing.T) {
	dims := dimsFor(t, "2016")
	header := []any{"Province", "Dimension 1: Participation", "DIMENSION 1: PARTICIPATION"}

	m := MapColumns(header, dims, DefaultAnchor)
	assert.Equal(t, 1, m.Direct["Dimension 1: Participation"])
}

func TestMapColumnsProvinceIsCaseSensitive(t *testing.T) {
	header := []any{"PROVINCE", "province code", " Province ", "1. Sub A"}

	m := MapColumns(header, dimsFor(t, "2018"), DefaultAnchor)
	assert.Equal(t, 2, m.ProvinceColumn)
	assert.Equal(t, []int{0, 1}, indices(m.Ignored))
}

func TestMapColumnsWithoutProvince(t *testing.T) {
	m := MapColumns([]any{"1. Sub A"}, dimsFor(t, "2018"), DefaultAnchor)
	assert.Equal(t, -1, m.ProvinceColumn)
}

func indices(cols []Column) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = c.Index
	}
	return out
}
