// Reconcile command: align entity-document key sets with the template.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctlfiles/internal/prompt"
	"github.com/mesh-intelligence/ctlfiles/internal/reconcile"
	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

var (
	reconcileYes    bool
	reconcileDryRun bool
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <subfolder>",
	Short: "Align entity documents under a subfolder with the template",
	Long: `Reconcile walks every .json file under the given subfolder (resolved
against the corpus root when relative), reports each file's key-set
divergence from the template, and, after a single confirmation for the
whole batch, adds missing keys with template defaults and removes keys the
template does not have. Values of surviving keys are preserved.

Example:
  ctlfiles reconcile json_sys1
  ctlfiles reconcile json_sys1 --dry-run
  ctlfiles reconcile json_sys1 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileYes, "yes", false, "apply without prompting")
	reconcileCmd.Flags().BoolVar(&reconcileDryRun, "dry-run", false, "report divergences without writing")
}

// autoConfirm satisfies types.Confirmer for --yes runs.
type autoConfirm struct{}

func (autoConfirm) Confirm(string) (bool, error) { return true, nil }

func runReconcile(cmd *cobra.Command, args []string) error {
	tmplStore, cfg, err := templateStore()
	if err != nil {
		return err
	}

	subfolder := args[0]
	if !filepath.IsAbs(subfolder) {
		subfolder = filepath.Join(cfg.RootDir, subfolder)
	}

	if err := ensureDir(subfolder); err != nil {
		return err
	}

	var confirm types.Confirmer = &prompt.LineConfirmer{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	if reconcileYes {
		confirm = autoConfirm{}
	}

	// The audit record is best-effort: a missing control database must not
	// block reconciliation.
	var runs types.RunRecorder
	store, _, err := attachStore()
	if err != nil {
		logger.Warn().Err(err).Msg("control store unavailable; skipping audit record")
	} else {
		defer store.Detach()
		runs = store
	}

	r := reconcile.New(tmplStore, confirm, cmd.OutOrStdout(), runs, logger)
	res, err := r.Run(subfolder, reconcileDryRun)
	if err != nil {
		return err
	}

	if res.Applied {
		fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %d of %d file(s).\n", res.Updated, res.Examined)
	}
	return nil
}

// ensureDir fails early with a readable error when the target subfolder
// does not exist.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
