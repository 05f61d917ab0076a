// =============================================================================
// PAPI Extractor - FDI Command
// =============================================================================
//
// This file defines the 'fdi' command, which extracts the provincial FDI
// series (Province, Year, FDI) from the FDI workbook into a CSV file.
//
// COMMAND USAGE:
//   papi fdi [--workbook FDI_processed.xlsm] [--output extracted_data.csv]
//
// The table layout (sheet, columns, skipped rows) comes from the fdi
// section of the configuration.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/papi-extractor/internal/csvwriter"
	"github.com/ginjaninja78/papi-extractor/internal/fdi"
	"github.com/ginjaninja78/papi-extractor/internal/xlsxparser"
)

var (
	fdiWorkbook string
	fdiOutput   string
)

var fdiCmd = &cobra.Command{
	Use:   "fdi",
	Short: "Extract the provincial FDI series to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := setup(cmd)
		if err != nil {
			return err
		}
		fc := rc.cfg.FDI

		if cmd.Flags().Changed("workbook") {
			fc.WorkbookPath = fdiWorkbook
		}
		if cmd.Flags().Changed("output") {
			fc.OutputFile = fdiOutput
		}

		wb, err := xlsxparser.Open(fc.WorkbookPath)
		if err != nil {
			return err
		}
		defer wb.Close()

		grid, err := wb.Grid(fc.Sheet)
		if err != nil {
			return err
		}

		rows, err := fdi.Extract(grid, fdi.Layout{
			YearColumn:     fc.YearColumn,
			ProvinceColumn: fc.ProvinceColumn,
			ValueColumn:    fc.ValueColumn,
			SkipRows:       fc.SkipRows,
		})
		if err != nil {
			return err
		}

		if err := csvwriter.WriteFDI(fc.OutputFile, rows); err != nil {
			return err
		}

		rc.logger.Info("saved FDI data", "sheet", fc.Sheet, "rows", len(rows), "file", fc.OutputFile)
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d FDI row(s) to %s\n", len(rows), fc.OutputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fdiCmd)

	fdiCmd.Flags().StringVar(&fdiWorkbook, "workbook", "", "FDI workbook to read")
	fdiCmd.Flags().StringVar(&fdiOutput, "output", "", "CSV file to write")
}
