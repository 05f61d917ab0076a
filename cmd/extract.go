// =============================================================================
// PAPI Extractor - Extract Command
// =============================================================================
//
// This file defines the 'extract' command, which runs the extraction
// pipeline over every candidate sheet of the PAPI workbook.
//
// COMMAND USAGE:
//   papi extract [flags]
//
// FLAGS:
//   --workbook    : PAPI workbook to read (overrides workbook_path)
//   --output-dir  : Directory for papi_<year>.json (overrides output_dir)
//   --schema      : YAML year -> dimensions table (overrides schema_file)
//   --dry-run     : Extract and validate without writing output files
//
// EXIT STATUS:
//   Sheet-level failures are reported in the summary and do not fail the
//   command. Only start-up errors (configuration, schema, unreadable
//   workbook) return a non-zero status.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/papi-extractor/internal/extractor"
	"github.com/ginjaninja78/papi-extractor/internal/jsonwriter"
	"github.com/ginjaninja78/papi-extractor/internal/schema"
	"github.com/ginjaninja78/papi-extractor/internal/xlsxparser"
	"github.com/ginjaninja78/papi-extractor/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	workbookPath string
	outputDir    string
	schemaFile   string
	dryRun       bool
)

// =============================================================================
// EXTRACT COMMAND DEFINITION
// =============================================================================

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract per-year province records from the PAPI workbook",
	Long: `The extract command scans the workbook for sheets whose name ends with
"process", resolves each sheet's survey year, and writes the provinces' scores
to papi_<year>.json in the output directory.

A year whose output file already exists is skipped without reading its sheet,
so an interrupted run can simply be restarted.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&workbookPath, "workbook", "", "PAPI workbook to read")
	extractCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for papi_<year>.json files")
	extractCmd.Flags().StringVar(&schemaFile, "schema", "", "YAML file with the year -> dimensions table")
	extractCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and validate without writing output files")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runExtract(cmd *cobra.Command) error {
	startTime := time.Now()

	rc, err := setup(cmd)
	if err != nil {
		return err
	}
	cfg := rc.cfg

	if cmd.Flags().Changed("workbook") {
		cfg.WorkbookPath = workbookPath
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("schema") {
		cfg.SchemaFile = schemaFile
	}

	table, err := loadSchema(cfg.SchemaFile)
	if err != nil {
		return err
	}

	wb, err := xlsxparser.Open(cfg.WorkbookPath)
	if err != nil {
		return err
	}
	defer wb.Close()

	rc.logger.Info("starting extraction",
		"workbook", cfg.WorkbookPath,
		"output_dir", cfg.OutputDir,
		"years", len(table.Years()),
		"dry_run", dryRun,
	)

	ex := extractor.New(table, jsonwriter.New(cfg.OutputDir), extractor.Options{
		SheetSuffix:   cfg.SheetSuffix,
		Anchor:        cfg.AnchorToken,
		LegendMarkers: cfg.LegendMarkers,
		DryRun:        dryRun,
	}, rc.logger)

	results := ex.Run(wb)

	summary := utils.RunSummary{
		RunID:     rc.runID,
		Workbook:  cfg.WorkbookPath,
		StartTime: startTime,
		EndTime:   time.Now(),
		Sheets:    sheetSummaries(results),
	}
	printSummary(cmd.OutOrStdout(), summary)

	if cfg.SummaryLog && !dryRun {
		path, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
		if err != nil {
			rc.logger.Error("failed to write summary log", "error", err)
		} else {
			rc.logger.Info("summary log written", "file", path)
		}
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func loadSchema(path string) (*schema.Table, error) {
	if path == "" {
		return schema.Default(), nil
	}
	table, err := schema.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return table, nil
}

func sheetSummaries(results []extractor.Result) []utils.SheetSummary {
	out := make([]utils.SheetSummary, 0, len(results))
	for _, res := range results {
		s := utils.SheetSummary{
			Sheet:      res.Sheet,
			Year:       res.Year,
			Outcome:    res.Kind,
			OutputFile: res.OutputFile,
		}
		if res.Success() {
			s.Records = res.Stats.Records
		} else {
			s.Reason = res.Error.Error()
		}
		out = append(out, s)
	}
	return out
}

func printSummary(w io.Writer, summary utils.RunSummary) {
	for _, s := range summary.Sheets {
		switch s.Outcome {
		case extractor.KindWritten:
			fmt.Fprintf(w, "  ✓ %s -> %s (%d records)\n", s.Sheet, s.OutputFile, s.Records)
		case extractor.KindDryRun:
			fmt.Fprintf(w, "  ✓ %s: %d records (dry run)\n", s.Sheet, s.Records)
		default:
			fmt.Fprintf(w, "  ✗ %s: %s\n", s.Sheet, s.Reason)
		}
	}

	fmt.Fprintln(w, "\n=== Extraction Complete ===")
	fmt.Fprintf(w, "Candidate sheets: %d\n", len(summary.Sheets))
	fmt.Fprintf(w, "Written:          %d\n", summary.Count(extractor.KindWritten))
	fmt.Fprintf(w, "Already done:     %d\n", summary.Count(extractor.KindAlreadyProcessed))
	fmt.Fprintf(w, "Records:          %d\n", summary.TotalRecords())
	fmt.Fprintf(w, "Time elapsed:     %s\n", summary.EndTime.Sub(summary.StartTime))
}
