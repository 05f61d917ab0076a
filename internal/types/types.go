// =============================================================================
// PAPI Extractor - Shared Types
// =============================================================================
//
// This package contains the output record shared by:
//   - extractor  (builds records)
//   - validation (checks records)
//   - jsonwriter (serializes records)
//
// =============================================================================

package types

import (
	"bytes"
	"encoding/json"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// Record is one (province, year) row of the PAPI dataset.
type Record struct {
	// Province is the trimmed province name from the sheet.
	Province string

	// Year is the 4-digit survey year resolved from the sheet name.
	Year string

	// Scores holds one entry per canonical dimension, in schema order.
	// A dimension without a value is still present with a nil Value.
	Scores []Score
}

// Score is a single dimension value of a record.
type Score struct {
	// Dimension is the canonical dimension name, e.g. "Dimension 1: Participation".
	Dimension string

	// Value is nil when the sheet carried no usable number. Zero is a real score.
	Value *float64
}

// Float returns a pointer to v, for building scores.
func Float(v float64) *float64 {
	return &v
}

// Score returns the value for a dimension and whether the dimension is present.
func (r Record) Score(dimension string) (*float64, bool) {
	for _, s := range r.Scores {
		if s.Dimension == dimension {
			return s.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the record as a flat object with keys in a stable order:
// Province, Year, then each dimension in schema order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeMember(&buf, "Province", r.Province); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeMember(&buf, "Year", r.Year); err != nil {
		return nil, err
	}

	for _, s := range r.Scores {
		buf.WriteByte(',')
		var value any
		if s.Value != nil {
			value = *s.Value
		}
		if err := writeMember(&buf, s.Dimension, value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
