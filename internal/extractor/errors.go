package extractor

import (
	"errors"
	"fmt"
)

// Sheet-scoped outcomes. None of them stops a run.
var (
	// ErrUnclassifiableSheet means no year could be resolved from the sheet
	// name, or the year has no schema entry.
	ErrUnclassifiableSheet = errors.New("unclassifiable sheet")

	// ErrMissingAnchor means no header anchor cell was found.
	ErrMissingAnchor = errors.New("header anchor not found")

	// ErrAlreadyProcessed means the year's output file already exists.
	ErrAlreadyProcessed = errors.New("output already exists")

	// ErrEmptyResult means no row survived filtering.
	ErrEmptyResult = errors.New("no records extracted")

	// ErrInvalidRecords means extracted records broke an output guarantee.
	ErrInvalidRecords = errors.New("extracted records failed validation")
)

// Stages at which a sheet can stop.
const (
	StageResolve  = "resolve"
	StageOutput   = "output"
	StageRead     = "read"
	StageHeader   = "header"
	StageColumns  = "columns"
	StageRows     = "rows"
	StageValidate = "validate"
	StageWrite    = "write"
)

// SheetError is a failure while processing one sheet.
type SheetError struct {
	Sheet string
	Stage string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.Sheet, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// Outcome kinds reported per sheet.
const (
	KindWritten          = "written"
	KindDryRun           = "dry_run"
	KindUnclassifiable   = "unclassifiable"
	KindMissingAnchor    = "missing_anchor"
	KindAlreadyProcessed = "already_processed"
	KindEmptyResult      = "empty_result"
	KindUnexpected       = "unexpected"
)

// Kind classifies a sheet error. A nil error is KindWritten.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindWritten
	case errors.Is(err, ErrUnclassifiableSheet):
		return KindUnclassifiable
	case errors.Is(err, ErrMissingAnchor):
		return KindMissingAnchor
	case errors.Is(err, ErrAlreadyProcessed):
		return KindAlreadyProcessed
	case errors.Is(err, ErrEmptyResult):
		return KindEmptyResult
	default:
		return KindUnexpected
	}
}
