package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/shiftmerge/internal/config"
	"github.com/dbsmedya/shiftmerge/internal/ingest"
	"github.com/dbsmedya/shiftmerge/internal/logger"
	"github.com/dbsmedya/shiftmerge/internal/render"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one batch over the input directory",
	Long: `Ingest discovers the data files in the input directory, parses and
validates each one independently, stamps valid tables with provenance
metadata and merges them into one combined dataset.

Per-file failures (missing file, empty input, malformed content, schema
violations) are recorded in the processing report and skipped; only
directory-level failures abort the run.

Example:
  shiftmerge ingest --config shiftmerge.yaml --input-dir data/input`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	// Explicit one-time setup: the input directory is created if absent
	// so a fresh deployment starts from "no data" instead of an error.
	if err := ingest.EnsureInputDir(cfg.Ingest.InputDir); err != nil {
		return err
	}

	processor := ingest.NewProcessor(cfg.Ingest.InputDir, log,
		ingest.WithExtension(cfg.Ingest.Extension))

	result, err := processor.ProcessAllFiles(context.Background())
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	cmd.Print(render.RenderReport(result.Report))

	if result.NoData() {
		log.Warn("Run produced no data")
	}
	return nil
}

// loadConfig loads the config file (falling back to defaults when it
// does not exist), applies CLI overrides and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.InputDir, overrides.Extension,
		overrides.LogLevel, overrides.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
