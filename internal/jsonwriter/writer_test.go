package jsonwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/papi-extractor/internal/types"
)

func sampleRecords() []types.Record {
	return []types.Record{
		{
			Province: "Hanoi",
			Year:     "2018",
			Scores: []types.Score{
				{Dimension: "Dimension 1: Participation", Value: types.Float(7)},
				{Dimension: "Dimension 2: Transparency of Local Decision-making"},
			},
		},
	}
}

func TestWriteAndRead(t *testing.T) {
	w := New(t.TempDir())
	assert.False(t, w.Exists("2018"))

	path, err := w.Write("2018", sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, "papi_2018.json", filepath.Base(path))
	assert.True(t, w.Exists("2018"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "Province": "Hanoi",
    "Year": "2018",
    "Dimension 1: Participation": 7,
    "Dimension 2: Transparency of Local Decision-making": null
  }
]
`, string(data))

	got, err := w.Read("2018")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Hanoi", got[0]["Province"])
	assert.Nil(t, got[0]["Dimension 2: Transparency of Local Decision-making"])
	assert.Contains(t, got[0], "Dimension 2: Transparency of Local Decision-making")
}

func TestWriteNeverOverwrites(t *testing.T) {
	w := New(t.TempDir())
	_, err := w.Write("2018", sampleRecords())
	require.NoError(t, err)

	_, err = w.Write("2018", sampleRecords())
	assert.ErrorIs(t, err, ErrFileExists)
}

func TestWriteSkipsEmpty(t *testing.T) {
	w := New(t.TempDir())
	_, err := w.Write("2018", nil)
	assert.Error(t, err)
	assert.False(t, w.Exists("2018"))
}

func TestPathPattern(t *testing.T) {
	w := &Writer{OutputDir: "out", FilePattern: "index-%s.json"}
	assert.Equal(t, filepath.Join("out", "index-2020.json"), w.Path("2020"))

	w.FilePattern = ""
	assert.Equal(t, filepath.Join("out", "papi_2020.json"), w.Path("2020"))
}
