// =============================================================================
// PAPI Extractor - Schema Command
// =============================================================================
//
// This file defines the 'schema' command, which prints the effective
// year -> dimensions table, or only checks it with --validate.
//
// COMMAND USAGE:
//   papi schema [--schema table.yaml] [--validate]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	schemaPath     string
	validateSchema bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show or validate the year -> dimensions table",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := setup(cmd)
		if err != nil {
			return err
		}

		path := rc.cfg.SchemaFile
		if cmd.Flags().Changed("schema") {
			path = schemaPath
		}

		table, err := loadSchema(path)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		years := table.Years()
		if validateSchema {
			fmt.Fprintf(w, "Schema OK: %d year(s)\n", len(years))
			return nil
		}

		for _, year := range years {
			dims, err := table.Lookup(year)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s:\n", year)
			for _, d := range dims {
				fmt.Fprintf(w, "  %s\n", d.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(&schemaPath, "schema", "", "YAML file with the year -> dimensions table")
	schemaCmd.Flags().BoolVar(&validateSchema, "validate", false, "Only validate the table")
}
