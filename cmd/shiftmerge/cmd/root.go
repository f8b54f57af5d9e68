package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	inputDir  string
	extension string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "shiftmerge",
	Short: "Production-shift CSV Ingestion & Merge",
	Long: `A CLI tool that ingests a directory of production-shift CSV files,
validates each against the required schema, stamps provenance metadata
and merges the valid files into one combined dataset.

Features:
  - Per-file failure containment: one corrupt input never aborts the batch
  - Required-schema validation with exact missing-column diagnostics
  - Date normalization with explicit missing-date markers
  - Structured processing report with batch summary statistics`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "shiftmerge.yaml",
		"Path to configuration file")

	// Ingest overrides
	rootCmd.PersistentFlags().StringVar(&inputDir, "input-dir", "",
		"Override input directory containing data files")
	rootCmd.PersistentFlags().StringVar(&extension, "ext", "",
		"Override matched file extension (default .csv)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	InputDir  string
	Extension string
	LogLevel  string
	LogFormat string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		InputDir:  inputDir,
		Extension: extension,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
}
