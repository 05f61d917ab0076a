// =============================================================================
// PAPI Extractor - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (later wins):
//   1. Built-in defaults
//   2. The YAML config file (config.yaml by default; optional unless the
//      --config flag was given explicitly)
//   3. Environment variables prefixed with PAPI_, e.g. PAPI_OUTPUT_DIR,
//      PAPI_LEGEND_MARKERS=RANGE,ITEM, PAPI_FDI_SHEET
//   4. Command-line flags (applied by the cmd package)
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "PAPI"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// INPUT / OUTPUT
	// =========================================================================

	// WorkbookPath is the PAPI workbook to read.
	// Default: "data/PAPI-2015-2023(eng).xlsm"
	WorkbookPath string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH"`

	// OutputDir receives papi_<year>.json files.
	// Default: "data"
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`

	// SchemaFile replaces the built-in year -> dimensions table when set.
	SchemaFile string `yaml:"schema_file" envconfig:"SCHEMA_FILE"`

	// =========================================================================
	// SHEET LAYOUT
	// =========================================================================

	// SheetSuffix selects candidate sheets (case-insensitive).
	// Default: "process"
	SheetSuffix string `yaml:"sheet_suffix" envconfig:"SHEET_SUFFIX"`

	// AnchorToken is the header cell text that marks the header row.
	// Default: "Province"
	AnchorToken string `yaml:"anchor_token" envconfig:"ANCHOR_TOKEN"`

	// LegendMarkers mark legend/footer rows by their province cell.
	// Default: ["RANGE", "ITEM", "ATTRIBUTE"]
	LegendMarkers []string `yaml:"legend_markers" envconfig:"LEGEND_MARKERS"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel: "debug", "info", "warn", "error". Default: "info"
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// LogFormat: "text" or "json". Default: "text"
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`

	// SummaryLog writes papi_summary_<timestamp>.txt to OutputDir after a run.
	SummaryLog bool `yaml:"summary_log" envconfig:"SUMMARY_LOG"`

	// =========================================================================
	// FDI EXTRACTION
	// =========================================================================

	FDI FDIConfig `yaml:"fdi" envconfig:"FDI"`
}

// FDIConfig locates the provincial FDI table.
type FDIConfig struct {
	// WorkbookPath is the FDI workbook. Default: "data/FDI_processed.xlsm"
	WorkbookPath string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH"`

	// Sheet is the sheet holding one row per province and year. Default: "City"
	Sheet string `yaml:"sheet" envconfig:"SHEET"`

	// Column letters of the year, province and FDI value. Defaults: B, C, L
	YearColumn     string `yaml:"year_column" envconfig:"YEAR_COLUMN"`
	ProvinceColumn string `yaml:"province_column" envconfig:"PROVINCE_COLUMN"`
	ValueColumn    string `yaml:"value_column" envconfig:"VALUE_COLUMN"`

	// SkipRows is the number of sheet rows above the first data row.
	// Default: 2 (a header row and a units row)
	SkipRows int `yaml:"skip_rows" envconfig:"SKIP_ROWS"`

	// OutputFile is the CSV to write. Default: "data/extracted_data.csv"
	OutputFile string `yaml:"output_file" envconfig:"OUTPUT_FILE"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the configuration from configPath, then the
// environment. A missing file is an error only when required is true.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
		// Defaults and environment only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration with only defaults applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// applyMainConfigDefaults sets default values for any unset option.
func applyMainConfigDefaults(config *MainConfig) {
	if config.WorkbookPath == "" {
		config.WorkbookPath = "data/PAPI-2015-2023(eng).xlsm"
	}
	if config.OutputDir == "" {
		config.OutputDir = "data"
	}
	if config.SheetSuffix == "" {
		config.SheetSuffix = "process"
	}
	if config.AnchorToken == "" {
		config.AnchorToken = "Province"
	}
	if config.LegendMarkers == nil {
		config.LegendMarkers = []string{"RANGE", "ITEM", "ATTRIBUTE"}
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}

	if config.FDI.WorkbookPath == "" {
		config.FDI.WorkbookPath = "data/FDI_processed.xlsm"
	}
	if config.FDI.Sheet == "" {
		config.FDI.Sheet = "City"
	}
	if config.FDI.YearColumn == "" {
		config.FDI.YearColumn = "B"
	}
	if config.FDI.ProvinceColumn == "" {
		config.FDI.ProvinceColumn = "C"
	}
	if config.FDI.ValueColumn == "" {
		config.FDI.ValueColumn = "L"
	}
	if config.FDI.SkipRows == 0 {
		config.FDI.SkipRows = 2
	}
	if config.FDI.OutputFile == "" {
		config.FDI.OutputFile = "data/extracted_data.csv"
	}
}

// validateMainConfig validates the configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}
	switch strings.ToLower(config.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}
	if strings.TrimSpace(config.AnchorToken) == "" {
		return errors.New("anchor_token must not be blank")
	}
	if strings.TrimSpace(config.SheetSuffix) == "" {
		return errors.New("sheet_suffix must not be blank")
	}
	if config.FDI.SkipRows < 0 {
		return errors.New("fdi.skip_rows must not be negative")
	}
	return nil
}
