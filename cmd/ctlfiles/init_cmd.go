// Init command: create the config directory, corpus root, and control
// database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctlfiles/internal/corpus"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ctlfiles directories and the control database",
	Long: `Init creates the configuration directory with a default config.yaml,
the corpus root, an empty template document when none exists, and the
control database with its audit schema. Init is idempotent.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return fmt.Errorf("create corpus root: %w", err)
	}

	if _, err := os.Stat(cfg.TemplatePath); os.IsNotExist(err) {
		if err := corpus.WriteDoc(cfg.TemplatePath, map[string]any{}); err != nil {
			return fmt.Errorf("create template: %w", err)
		}
	}

	store, _, err := attachStore()
	if err != nil {
		return err
	}
	if err := store.Detach(); err != nil {
		return fmt.Errorf("finalize control database: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized ctlfiles at %s\n", cfg.RootDir)
	return nil
}
