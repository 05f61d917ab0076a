// =============================================================================
// PAPI Extractor - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (papi)
//   ├── extractCmd (papi extract)
//   ├── schemaCmd  (papi schema)
//   ├── fdiCmd     (papi fdi)
//   └── versionCmd (papi version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Each
//   subcommand calls setup() to load the configuration and build its logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/papi-extractor/internal/config"
	"github.com/ginjaninja78/papi-extractor/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "papi",
	Short: "PAPI Extractor - Turn the yearly PAPI workbook sheets into JSON",
	Long: `PAPI Extractor reads the Provincial Governance and Public Administration
Performance Index workbook and writes one JSON file per survey year, with one
record per province and one score per canonical dimension.

Each "<year> process" sheet is handled independently: a sheet that cannot be
classified or parsed is logged and skipped, and years whose papi_<year>.json
already exists are not processed again.

Example Usage:
  papi extract                              # Extract every year in the workbook
  papi extract --workbook in.xlsm --dry-run # Check a workbook without writing
  papi schema                               # Show the year -> dimensions table
  papi fdi                                  # Extract the provincial FDI series`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// runContext is what every subcommand needs after start-up.
type runContext struct {
	cfg    *config.MainConfig
	logger *slog.Logger
	runID  string
}

// setup loads the configuration and builds the logger. The config file is
// optional unless --config was given explicitly.
func setup(cmd *cobra.Command) (*runContext, error) {
	required := cmd.Flags().Changed("config")
	cfg, err := config.LoadMainConfig(cfgFile, required)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	runID := logging.NewRunID()
	logger := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat, runID)
	logger.Debug("configuration loaded", "config", cfgFile, "required", required)

	return &runContext{cfg: cfg, logger: logger, runID: runID}, nil
}
