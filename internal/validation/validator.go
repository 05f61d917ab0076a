// =============================================================================
// PAPI Extractor - Record Validation
// =============================================================================
//
// This module checks extracted records against the guarantees every output
// file makes before anything is written:
//   - every record carries exactly the year's dimension keys, in schema order
//   - the province is non-blank and is not a legend/footer marker
//   - the record year is the sheet year
//   - scores are finite numbers or null
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - "error" severity means the sheet must not be written
//   - "warning" severity (e.g. a province listed twice) is only reported
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/ginjaninja78/papi-extractor/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError is a single problem found in a record.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// RecordIndex is the 0-based position of the record in the sheet output.
	RecordIndex int

	// Province is the record's province, if any.
	Province string

	// Dimension is the dimension key involved, if any.
	Dimension string

	// Rule names the violated rule.
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] record %d", strings.ToUpper(e.Severity), e.RecordIndex)
	if e.Province != "" {
		fmt.Fprintf(&b, " (%s)", e.Province)
	}
	if e.Dimension != "" {
		fmt.Fprintf(&b, ", dimension '%s'", e.Dimension)
	}
	fmt.Fprintf(&b, ": %s [%s]", e.Message, e.Rule)
	return b.String()
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors of SeverityError.
	IsValid bool

	// Errors contains all problems, warnings included.
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int

	// RecordsValidated is the number of records checked.
	RecordsValidated int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks records for one sheet.
type Validator struct {
	year       string
	dimensions []string
	markers    []string
}

// NewValidator creates a Validator for a year's ordered dimension names and
// the legend markers used by the row filter.
func NewValidator(year string, dimensions, markers []string) *Validator {
	return &Validator{
		year:       year,
		dimensions: dimensions,
		markers:    markers,
	}
}

// Validate checks records and returns every problem found.
func Validate(records []types.Record, year string, dimensions, markers []string) []*ValidationError {
	return NewValidator(year, dimensions, markers).ValidateAll(records).Errors
}

// ValidateAll checks records and returns a detailed result.
func (v *Validator) ValidateAll(records []types.Record) *ValidationResult {
	result := &ValidationResult{
		IsValid:          true,
		Errors:           make([]*ValidationError, 0),
		RecordsValidated: len(records),
	}

	seen := make(map[string]int, len(records))
	for i, rec := range records {
		errs := v.ValidateRecord(i, rec)

		key := strings.ToLower(rec.Province)
		if first, dup := seen[key]; dup && key != "" {
			errs = append(errs, &ValidationError{
				Severity:    SeverityWarning,
				RecordIndex: i,
				Province:    rec.Province,
				Rule:        "duplicate_province",
				Message:     fmt.Sprintf("province already listed at record %d", first),
			})
		} else {
			seen[key] = i
		}

		for _, err := range errs {
			result.Errors = append(result.Errors, err)
			if err.Severity == SeverityError {
				result.ErrorCount++
				result.IsValid = false
			} else {
				result.WarningCount++
			}
		}
	}

	return result
}

// ValidateRecord checks a single record.
func (v *Validator) ValidateRecord(index int, rec types.Record) []*ValidationError {
	var errs []*ValidationError
	fail := func(rule, dimension, msg string) {
		errs = append(errs, &ValidationError{
			Severity:    SeverityError,
			RecordIndex: index,
			Province:    rec.Province,
			Dimension:   dimension,
			Rule:        rule,
			Message:     msg,
		})
	}

	province := strings.TrimSpace(rec.Province)
	if province == "" {
		fail("blank_province", "", "province is blank")
	}
	upper := strings.ToUpper(province)
	for _, marker := range v.markers {
		if marker != "" && strings.Contains(upper, strings.ToUpper(marker)) {
			fail("legend_province", "", fmt.Sprintf("province contains legend marker %q", marker))
		}
	}

	if rec.Year != v.year {
		fail("year_mismatch", "", fmt.Sprintf("record year %q, sheet year %q", rec.Year, v.year))
	}

	if len(rec.Scores) != len(v.dimensions) {
		fail("dimension_count", "", fmt.Sprintf("has %d dimensions, schema has %d", len(rec.Scores), len(v.dimensions)))
	}
	for i, s := range rec.Scores {
		if i < len(v.dimensions) && s.Dimension != v.dimensions[i] {
			fail("dimension_key", s.Dimension, fmt.Sprintf("expected '%s' at position %d", v.dimensions[i], i))
		}
		if s.Value != nil && (math.IsNaN(*s.Value) || math.IsInf(*s.Value, 0)) {
			fail("non_finite_score", s.Dimension, "score is not a finite number")
		}
	}

	return errs
}
