package csvwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/papi-extractor/internal/fdi"
)

func ptr(f float64) *float64 { return &f }

func TestGenerate(t *testing.T) {
	data, err := Generate([]fdi.Row{
		{Province: "Hanoi", Year: "2015", Value: ptr(1234.5)},
		{Province: "Ba Ria, Vung Tau", Year: "2016", Value: ptr(7)},
		{Province: "Bac Ninh", Year: "2016"},
		{Province: "Hue", Year: "2017", Text: "N/A"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Province,Year,FDI\n"+
		"Hanoi,2015,1234.5\n"+
		"\"Ba Ria, Vung Tau\",2016,7\n"+
		"Bac Ninh,2016,\n"+
		"Hue,2017,N/A\n", string(data))
}

func TestWriteFDI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "extracted_data.csv")

	require.NoError(t, WriteFDI(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Province,Year,FDI\n", string(data))

	require.NoError(t, WriteFDI(path, []fdi.Row{{Province: "Hue", Year: "2019", Value: ptr(3)}}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Province,Year,FDI\nHue,2019,3\n", string(data))
}
