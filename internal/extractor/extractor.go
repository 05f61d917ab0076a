// =============================================================================
// PAPI Extractor - Extraction Pipeline
// =============================================================================
//
// This module runs the per-sheet pipeline that turns one yearly "process"
// sheet into a list of records.
//
// PIPELINE (per sheet):
//   1. Resolve the year from the sheet name and look up its dimensions
//   2. Skip the sheet if the year's output file already exists
//   3. Read the raw grid
//   4. Locate the header row by its "Province" anchor cell
//   5. Map header columns to dimensions and sub-indicator groups
//   6. Build one record per data row
//   7. Validate the records
//   8. Hand the records to the sink
//
// FAILURES:
//   Every failure is scoped to its sheet. It is logged with the sheet name
//   and reason, recorded in the sheet's Result, and the run moves on.
//
// =============================================================================

package extractor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ginjaninja78/papi-extractor/internal/schema"
	"github.com/ginjaninja78/papi-extractor/internal/types"
	"github.com/ginjaninja78/papi-extractor/internal/validation"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Workbook supplies sheet names and raw grids. Cells are float64 for numbers,
// string for text and nil for blanks.
type Workbook interface {
	SheetNames() []string
	Grid(sheet string) ([][]any, error)
}

// Sink stores one year's records.
type Sink interface {
	Exists(year string) bool
	Write(year string, records []types.Record) (string, error)
}

// =============================================================================
// OPTIONS & RESULT
// =============================================================================

// Options tune the pipeline. Zero values fall back to the defaults.
type Options struct {
	// SheetSuffix selects candidate sheets (case-insensitive). Default "process".
	SheetSuffix string

	// Anchor is the header-row marker text. Default "Province".
	Anchor string

	// LegendMarkers flag non-data rows. Default RANGE, ITEM, ATTRIBUTE.
	LegendMarkers []string

	// DryRun extracts and validates without writing.
	DryRun bool
}

func (o Options) withDefaults() Options {
	if o.SheetSuffix == "" {
		o.SheetSuffix = "process"
	}
	if o.Anchor == "" {
		o.Anchor = DefaultAnchor
	}
	if o.LegendMarkers == nil {
		o.LegendMarkers = DefaultLegendMarkers
	}
	return o
}

// Result is the outcome of processing a single sheet.
type Result struct {
	Sheet string
	Year  string

	// OutputFile is set when records were written.
	OutputFile string

	// Kind classifies the outcome, see the Kind* constants.
	Kind string

	// Error is nil for written and dry-run sheets.
	Error error

	Stats ProcessingStats
}

// Success reports whether the sheet produced records.
func (r Result) Success() bool {
	return r.Error == nil
}

// ProcessingStats contains statistics about one sheet.
type ProcessingStats struct {
	HeaderRow       int
	RowsScanned     int
	RowsFiltered    int
	Records         int
	SubIndicators   int
	IgnoredColumns  int
	ValidationWarns int
	ProcessingTime  time.Duration
}

// =============================================================================
// EXTRACTOR
// =============================================================================

// Extractor processes the candidate sheets of a workbook, one at a time.
type Extractor struct {
	table  *schema.Table
	sink   Sink
	opts   Options
	logger *slog.Logger
}

// New creates an Extractor. A nil logger discards output.
func New(table *schema.Table, sink Sink, opts Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{
		table:  table,
		sink:   sink,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// CandidateSheets keeps the names ending with the sheet suffix, in order.
func (e *Extractor) CandidateSheets(names []string) []string {
	suffix := strings.ToLower(e.opts.SheetSuffix)
	var out []string
	for _, name := range names {
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			out = append(out, name)
		}
	}
	return out
}

// Run processes every candidate sheet in workbook order and returns one
// Result per candidate.
func (e *Extractor) Run(wb Workbook) []Result {
	names := wb.SheetNames()
	candidates := e.CandidateSheets(names)
	e.logger.Info("scanning workbook", "sheets", len(names), "candidates", len(candidates))

	results := make([]Result, 0, len(candidates))
	for _, sheet := range candidates {
		res := e.ProcessSheet(wb, sheet)
		e.logResult(res)
		results = append(results, res)
	}
	return results
}

// ProcessSheet runs the pipeline for one sheet. It never panics: a panic
// from a malformed grid is reported as an unexpected failure.
func (e *Extractor) ProcessSheet(wb Workbook, sheet string) (res Result) {
	start := time.Now()
	res = Result{Sheet: sheet}

	defer func() {
		if r := recover(); r != nil {
			res.Error = &SheetError{Sheet: sheet, Stage: StageRows, Err: fmt.Errorf("panic: %v", r)}
		}
		res.Kind = Kind(res.Error)
		if res.Error == nil && e.opts.DryRun {
			res.Kind = KindDryRun
		}
		res.Stats.ProcessingTime = time.Since(start)
	}()

	fail := func(stage string, err error) Result {
		res.Error = &SheetError{Sheet: sheet, Stage: stage, Err: err}
		return res
	}

	year, dims, err := e.table.Resolve(sheet)
	res.Year = year
	if err != nil {
		return fail(StageResolve, fmt.Errorf("%w: %w", ErrUnclassifiableSheet, err))
	}

	if e.sink.Exists(year) {
		return fail(StageOutput, fmt.Errorf("%w for year %s", ErrAlreadyProcessed, year))
	}

	e.logger.Info("processing sheet", "sheet", sheet, "year", year)

	grid, err := wb.Grid(sheet)
	if err != nil {
		return fail(StageRead, fmt.Errorf("failed to read sheet: %w", err))
	}

	records, err := e.extract(grid, year, dims, &res.Stats)
	if err != nil {
		var stage string
		switch {
		case errors.Is(err, ErrMissingAnchor):
			stage = StageHeader
		case errors.Is(err, ErrInvalidRecords):
			stage = StageValidate
		case errors.Is(err, ErrEmptyResult):
			stage = StageRows
		default:
			stage = StageColumns
		}
		return fail(stage, err)
	}

	if e.opts.DryRun {
		return res
	}

	path, err := e.sink.Write(year, records)
	if err != nil {
		return fail(StageWrite, fmt.Errorf("failed to write output: %w", err))
	}
	res.OutputFile = path
	return res
}

// Extract runs steps 4-7 of the pipeline on an in-memory grid.
func (e *Extractor) Extract(grid [][]any, year string, dims []schema.Dimension) ([]types.Record, error) {
	var stats ProcessingStats
	return e.extract(grid, year, dims, &stats)
}

func (e *Extractor) extract(grid [][]any, year string, dims []schema.Dimension, stats *ProcessingStats) ([]types.Record, error) {
	pos, ok := LocateHeader(grid, e.opts.Anchor)
	if !ok {
		return nil, fmt.Errorf("%w: no %q cell", ErrMissingAnchor, e.opts.Anchor)
	}
	stats.HeaderRow = pos.Row
	e.logger.Debug("found header anchor", "year", year, "row", pos.Row, "column", pos.Column)

	mapping := MapColumns(grid[pos.Row], dims, e.opts.Anchor)
	if mapping.ProvinceColumn < 0 {
		return nil, fmt.Errorf("no %q column in header row %d", e.opts.Anchor, pos.Row)
	}
	for _, members := range mapping.Groups {
		stats.SubIndicators += len(members)
	}
	stats.IgnoredColumns = len(mapping.Ignored)
	e.logger.Debug("mapped columns",
		"year", year,
		"direct", len(mapping.Direct),
		"groups", groupSummary(mapping),
		"ignored", len(mapping.Ignored),
	)

	records, filtered := Aggregate(grid, pos.Row, mapping, year, e.opts.LegendMarkers)
	stats.RowsScanned = len(grid) - pos.Row - 1
	stats.RowsFiltered = filtered
	stats.Records = len(records)
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	result := validation.NewValidator(year, schema.Names(dims), e.opts.LegendMarkers).ValidateAll(records)
	stats.ValidationWarns = result.WarningCount
	for _, ve := range result.Errors {
		if ve.Severity == validation.SeverityWarning {
			e.logger.Warn("validation warning", "year", year, "detail", ve.Error())
		}
	}
	if !result.IsValid {
		return nil, fmt.Errorf("%w: %d error(s), first: %v", ErrInvalidRecords, result.ErrorCount, firstError(result))
	}

	return records, nil
}

func (e *Extractor) logResult(res Result) {
	attrs := []any{"sheet", res.Sheet, "year", res.Year, "outcome", res.Kind}
	switch res.Kind {
	case KindWritten:
		e.logger.Info("saved records", append(attrs, "records", res.Stats.Records, "file", res.OutputFile)...)
	case KindDryRun:
		e.logger.Info("extracted records (dry run)", append(attrs, "records", res.Stats.Records)...)
	case KindUnclassifiable, KindAlreadyProcessed, KindEmptyResult, KindMissingAnchor:
		e.logger.Warn("skipping sheet", append(attrs, "reason", res.Error.Error())...)
	default:
		e.logger.Error("error processing sheet", append(attrs, "error", res.Error.Error())...)
	}
}

func groupSummary(m ColumnMapping) map[string]int {
	out := make(map[string]int, len(m.Groups))
	for name, members := range m.Groups {
		out[name] = len(members)
	}
	return out
}

func firstError(result *validation.ValidationResult) error {
	for _, ve := range result.Errors {
		if ve.Severity == validation.SeverityError {
			return ve
		}
	}
	return nil
}
