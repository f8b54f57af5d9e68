package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/shiftmerge/internal/ingest"
	"github.com/dbsmedya/shiftmerge/internal/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and probe the input directory",
	Long: `Check validates the configuration file and probes the input
directory without processing any file.

Checks performed:
  - Configuration syntax and required fields
  - Input directory existence and readability
  - Count of matching data files

Example:
  shiftmerge check --config shiftmerge.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting checks...")

	cmd.Printf("\n=== Configuration ===\n")
	cmd.Printf("Config file: %s\n", GetConfigFile())
	cmd.Printf("Input dir:   %s\n", cfg.Ingest.InputDir)
	cmd.Printf("Extension:   %s\n\n", cfg.Ingest.Extension)

	files, err := ingest.ListDataFiles(cfg.Ingest.InputDir, cfg.Ingest.Extension)
	if err != nil {
		return fmt.Errorf("input directory check failed: %w", err)
	}

	cmd.Printf("Matching files: %d\n", len(files))
	for _, name := range files {
		cmd.Printf("  - %s\n", name)
	}

	cmd.Println("\n=== Check Complete ===")
	return nil
}
