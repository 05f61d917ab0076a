// =============================================================================
// PAPI Extractor - JSON Writer Module
// =============================================================================
//
// This module stores one year of records as a JSON array. Each year gets its
// own file, papi_<year>.json, in the output directory:
//
//   [
//     {
//       "Province": "Hanoi",
//       "Year": "2018",
//       "Dimension 1: Participation": 7,
//       "Dimension 2: Transparency of Local Decision-making": 7.5,
//       "Dimension 3: Vertical Accountability": null,
//       ...
//     }
//   ]
//
// LIFECYCLE:
//   A year's file is created once. If it already exists the extractor skips
//   the sheet without reading it, which makes an interrupted batch resumable.
//   The writer never overwrites or merges.
//
// =============================================================================

package jsonwriter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/papi-extractor/internal/types"
	"github.com/ginjaninja78/papi-extractor/pkg/utils"
)

// DefaultFilePattern names a year's output file.
const DefaultFilePattern = "papi_%s.json"

// ErrFileExists is returned by Write when the year's file is already present.
var ErrFileExists = errors.New("output file already exists")

// Writer stores records under OutputDir.
type Writer struct {
	// OutputDir is the directory for papi_<year>.json files.
	OutputDir string

	// FilePattern is a fmt pattern taking the year. Default DefaultFilePattern.
	FilePattern string

	// Indent is the JSON indentation. Default two spaces.
	Indent string
}

// New creates a Writer for outputDir with the default layout.
func New(outputDir string) *Writer {
	return &Writer{
		OutputDir:   outputDir,
		FilePattern: DefaultFilePattern,
		Indent:      "  ",
	}
}

// Path returns the output file path for a year.
func (w *Writer) Path(year string) string {
	pattern := w.FilePattern
	if pattern == "" {
		pattern = DefaultFilePattern
	}
	return filepath.Join(w.OutputDir, fmt.Sprintf(pattern, year))
}

// Exists reports whether the year's output file is already present.
func (w *Writer) Exists(year string) bool {
	return utils.FileExists(w.Path(year))
}

// Generate renders records as an indented JSON array.
func (w *Writer) Generate(records []types.Record) ([]byte, error) {
	if records == nil {
		records = []types.Record{}
	}
	data, err := json.MarshalIndent(records, "", w.Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return append(data, '\n'), nil
}

// Write stores records for year and returns the file path. An empty record
// list is not written.
func (w *Writer) Write(year string, records []types.Record) (string, error) {
	if len(records) == 0 {
		return "", errors.New("no records to write")
	}
	path := w.Path(year)
	if utils.FileExists(path) {
		return "", fmt.Errorf("%w: %s", ErrFileExists, path)
	}

	data, err := w.Generate(records)
	if err != nil {
		return "", err
	}
	if err := utils.WriteFileAtomic(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Read loads a year's file as generic objects, for inspection tools and
// tests.
func (w *Writer) Read(year string) ([]map[string]any, error) {
	data, err := os.ReadFile(w.Path(year))
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", w.Path(year), err)
	}
	return out, nil
}
