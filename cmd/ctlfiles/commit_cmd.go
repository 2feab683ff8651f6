// Commit command: write the corpus into the managed control table.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctlfiles/internal/schema"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit the corpus to the managed control table",
	Long: `Commit infers a flat tabular schema from the template's default value
types (boolean, long, string), reads every entity document as one row, and
overwrites the managed control table with schema merge enabled.

The write only happens when the corpus column set exactly matches the
template's key set; any divergence aborts the commit and reports the
mismatched keys. Run "ctlfiles reconcile" first to align the corpus.`,
	RunE: runCommit,
}

func runCommit(cmd *cobra.Command, args []string) error {
	tmplStore, _, err := templateStore()
	if err != nil {
		return err
	}
	store, cfg, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	c := schema.NewCommitter(tmplStore, cfg.RootDir, store, cfg.Control(), cmd.OutOrStdout(), store, logger)
	return c.Commit()
}
