// Modify command: filtered bulk edit of one key across the corpus.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctlfiles/internal/modify"
)

var (
	modifyKey    string
	modifyValue  string
	modifySystem string
	modifySchema string
	modifyKind   string
	modifyTable  string
)

var modifyCmd = &cobra.Command{
	Use:   "modify",
	Short: "Set a key's value in every control file matching the filters",
	Long: `Modify queries the control table for filenames matching the attribute
filters, then sets the key to the new value in each matching file that
already contains the key. Files lacking the key, missing files, and
per-file errors are reported individually; none of them stops the batch.

Filters default to "*" (match everything). The value is parsed as a JSON
literal, falling back to a plain string.

Example:
  ctlfiles modify --key active --value false --system sys1
  ctlfiles modify --key owner --value data-eng --schema schemaA --kind full`,
	RunE: runModify,
}

func init() {
	modifyCmd.Flags().StringVar(&modifyKey, "key", "", "key to set (required)")
	modifyCmd.Flags().StringVar(&modifyValue, "value", "", "new value (required)")
	modifyCmd.Flags().StringVar(&modifySystem, "system", modify.Wildcard, "system filter")
	modifyCmd.Flags().StringVar(&modifySchema, "schema", modify.Wildcard, "schema filter")
	modifyCmd.Flags().StringVar(&modifyKind, "kind", modify.Wildcard, "kind filter")
	modifyCmd.Flags().StringVar(&modifyTable, "table", modify.Wildcard, "table filter")
	_ = modifyCmd.MarkFlagRequired("key")
	_ = modifyCmd.MarkFlagRequired("value")
}

func runModify(cmd *cobra.Command, args []string) error {
	store, cfg, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	m := modify.New(cfg.RootDir, store, cmd.OutOrStdout(), logger)
	results, err := m.Apply(modifyKey, parseValue(modifyValue), modify.Filters{
		System: modifySystem,
		Schema: modifySchema,
		Kind:   modifyKind,
		Table:  modifyTable,
	})
	if err != nil {
		return err
	}

	modified := 0
	for _, res := range results {
		if res.Outcome == modify.OutcomeModified {
			modified++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Modified %d of %d file(s).\n", modified, len(results))
	return nil
}
