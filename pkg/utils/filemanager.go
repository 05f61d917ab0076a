// =============================================================================
// PAPI Extractor - File Manager Utility
// =============================================================================
//
// This module provides file utilities shared by the output writers:
//   - Existence checks (resumable runs skip years already written)
//   - Directory management
//   - Atomic file writes (temp file + rename, so a crash never leaves a
//     half-written papi_<year>.json behind that a later run would skip)
//   - Run summary generation
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic writes data to a uniquely named temp file next to path and
// renames it into place.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move temp file into place: %w", err)
	}
	return nil
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about an extraction run.
type RunSummary struct {
	RunID     string
	Workbook  string
	StartTime time.Time
	EndTime   time.Time
	Sheets    []SheetSummary
}

// SheetSummary is the outcome of one candidate sheet.
type SheetSummary struct {
	Sheet      string
	Year       string
	Outcome    string
	Records    int
	OutputFile string
	Reason     string
}

// Count returns how many sheets ended with the given outcome.
func (s RunSummary) Count(outcome string) int {
	n := 0
	for _, sh := range s.Sheets {
		if sh.Outcome == outcome {
			n++
		}
	}
	return n
}

// TotalRecords returns the number of records across all sheets.
func (s RunSummary) TotalRecords() int {
	n := 0
	for _, sh := range s.Sheets {
		n += sh.Records
	}
	return n
}

// WriteSummaryLog writes a run summary to outputDir and returns its path.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	timestamp := summary.EndTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("papi_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "PAPI Extractor - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Workbook:       %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Candidate Sheets: %d\n"+
		"  Records Written:  %d\n\n",
		summary.RunID,
		summary.Workbook,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		len(summary.Sheets),
		summary.TotalRecords())

	if len(summary.Sheets) > 0 {
		writer.WriteString("Sheets:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, sh := range summary.Sheets {
			fmt.Fprintf(writer, "  Sheet:   %s\n", sh.Sheet)
			fmt.Fprintf(writer, "  Year:    %s\n", sh.Year)
			fmt.Fprintf(writer, "  Outcome: %s\n", sh.Outcome)
			if sh.OutputFile != "" {
				fmt.Fprintf(writer, "  Output:  %s (%d records)\n", sh.OutputFile, sh.Records)
			}
			if sh.Reason != "" {
				fmt.Fprintf(writer, "  Reason:  %s\n", sh.Reason)
			}
			writer.WriteString("\n")
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
