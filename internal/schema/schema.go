// =============================================================================
// PAPI Extractor - Year Schema Table
// =============================================================================
//
// This package owns the hand-curated mapping from survey year to the ordered
// list of canonical dimension names, and the resolver that turns a sheet name
// into a year.
//
// TABLE SOURCE:
//   The default table is embedded from dimensions.yaml. A replacement table
//   with the same layout can be loaded with LoadFile (--schema flag or the
//   schema_file config key). Adding a year never requires touching code.
//
// INVARIANT:
//   Every dimension name reads "Dimension N: <label>" with N in 1..8, and N is
//   unique within a year. N drives sub-indicator matching ("N." prefixes).
//
// =============================================================================

package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed dimensions.yaml
var defaultTable []byte

// MaxDimension is the highest dimension number a sub-indicator prefix may use.
const MaxDimension = 8

var (
	// ErrYearNotFound is returned when a sheet name does not carry exactly
	// four digits.
	ErrYearNotFound = errors.New("sheet name does not contain a 4-digit year")

	// ErrUnknownYear is returned when the year has no entry in the table.
	ErrUnknownYear = errors.New("no dimensions defined for year")
)

var dimensionPattern = regexp.MustCompile(`^Dimension ([0-9]+): \S`)

// Dimension is one canonical scoring category of a survey year.
type Dimension struct {
	// Number is the N of "Dimension N: ...".
	Number int

	// Name is the full canonical name, used verbatim as the output key.
	Name string
}

// Table maps a 4-digit year to its ordered dimensions. It is read-only once
// built.
type Table struct {
	years map[string][]Dimension
}

type tableFile struct {
	Years map[string][]string `yaml:"years"`
}

// Default returns the embedded table. The embedded YAML is validated by the
// package tests, so a failure here is a programming error.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded table is invalid: %v", err))
	}
	return t
}

// LoadFile reads a table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file %s: %w", path, err)
	}
	return t, nil
}

// Parse builds a Table from YAML and validates every entry.
func Parse(data []byte) (*Table, error) {
	var raw tableFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if len(raw.Years) == 0 {
		return nil, errors.New("schema defines no years")
	}

	t := &Table{years: make(map[string][]Dimension, len(raw.Years))}
	for year, names := range raw.Years {
		if !isYear(year) {
			return nil, fmt.Errorf("invalid year key %q", year)
		}
		dims, err := parseDimensions(names)
		if err != nil {
			return nil, fmt.Errorf("year %s: %w", year, err)
		}
		t.years[year] = dims
	}
	return t, nil
}

func parseDimensions(names []string) ([]Dimension, error) {
	if len(names) == 0 {
		return nil, errors.New("no dimensions listed")
	}
	seen := make(map[int]bool, len(names))
	dims := make([]Dimension, 0, len(names))
	for _, name := range names {
		m := dimensionPattern.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("dimension %q does not read \"Dimension N: <label>\"", name)
		}
		n, _ := strconv.Atoi(m[1])
		if n < 1 || n > MaxDimension {
			return nil, fmt.Errorf("dimension %q: number must be between 1 and %d", name, MaxDimension)
		}
		if seen[n] {
			return nil, fmt.Errorf("dimension number %d listed twice", n)
		}
		seen[n] = true
		dims = append(dims, Dimension{Number: n, Name: name})
	}
	return dims, nil
}

// Lookup returns the ordered dimensions for a year. The returned slice is a
// copy.
func (t *Table) Lookup(year string) ([]Dimension, error) {
	dims, ok := t.years[year]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownYear, year)
	}
	out := make([]Dimension, len(dims))
	copy(out, dims)
	return out, nil
}

// Years returns the table's years in ascending order.
func (t *Table) Years() []string {
	years := make([]string, 0, len(t.years))
	for y := range t.years {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// ResolveYear keeps the digits of a sheet name, in order, and accepts the
// result only when exactly four remain ("2018 process" -> "2018").
func ResolveYear(sheetName string) (string, error) {
	var b strings.Builder
	for _, r := range sheetName {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() != 4 {
		return "", fmt.Errorf("%w: %q", ErrYearNotFound, sheetName)
	}
	return b.String(), nil
}

// Resolve combines ResolveYear and Lookup.
func (t *Table) Resolve(sheetName string) (string, []Dimension, error) {
	year, err := ResolveYear(sheetName)
	if err != nil {
		return "", nil, err
	}
	dims, err := t.Lookup(year)
	if err != nil {
		return year, nil, err
	}
	return year, dims, nil
}

// Names returns the canonical names of dims in order.
func Names(dims []Dimension) []string {
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Name
	}
	return names
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
