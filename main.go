// =============================================================================
// PAPI Extractor - Main Entry Point
// =============================================================================
//
// USAGE:
//   papi extract   - Write papi_<year>.json for every "<year> process" sheet
//   papi schema    - Show or validate the year -> dimensions table
//   papi fdi       - Extract the provincial FDI series to CSV
//   papi version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Extraction pipeline, schema, readers and writers
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/papi-extractor/cmd"
)

func main() {
	cmd.Execute()
}
