// Template editing commands: add, rename, and remove keys on the
// canonical template document.
package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

var (
	templateKey   string
	templateValue string
	templateFrom  string
	templateTo    string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Edit the template document",
	Long: `Template groups the operations on the canonical template document:
adding a key with a default value, renaming a key, and removing a key.

Each operation rewrites the whole template atomically. Entity documents are
not touched; run "ctlfiles reconcile" to propagate key-set changes.`,
}

var templateAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a key with a default value",
	Long: `Add sets a key in the template. An existing key is overwritten.

The value is parsed as a JSON literal: true/false become booleans, bare
numbers become integers, and everything else is a string.

Example:
  ctlfiles template add --key active --value true
  ctlfiles template add --key retries --value 3
  ctlfiles template add --key owner --value "data-eng"`,
	RunE: runTemplateAdd,
}

var templateRenameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename a key, keeping its default value",
	RunE:  runTemplateRename,
}

var templateRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a key",
	RunE:  runTemplateRemove,
}

var templateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the template document",
	RunE:  runTemplateShow,
}

func init() {
	templateAddCmd.Flags().StringVar(&templateKey, "key", "", "key name (required)")
	templateAddCmd.Flags().StringVar(&templateValue, "value", "", "default value (required)")
	_ = templateAddCmd.MarkFlagRequired("key")
	_ = templateAddCmd.MarkFlagRequired("value")

	templateRenameCmd.Flags().StringVar(&templateFrom, "from", "", "current key name (required)")
	templateRenameCmd.Flags().StringVar(&templateTo, "to", "", "new key name (required)")
	_ = templateRenameCmd.MarkFlagRequired("from")
	_ = templateRenameCmd.MarkFlagRequired("to")

	templateRemoveCmd.Flags().StringVar(&templateKey, "key", "", "key name (required)")
	_ = templateRemoveCmd.MarkFlagRequired("key")

	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateRenameCmd)
	templateCmd.AddCommand(templateRemoveCmd)
	templateCmd.AddCommand(templateShowCmd)
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	store, _, err := templateStore()
	if err != nil {
		return err
	}

	if err := store.AddKey(templateKey, parseValue(templateValue)); err != nil {
		return fmt.Errorf("add key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added key %q to %s\n", templateKey, store.Path())
	return nil
}

func runTemplateRename(cmd *cobra.Command, args []string) error {
	store, _, err := templateStore()
	if err != nil {
		return err
	}

	err = store.RenameKey(templateFrom, templateTo)
	if errors.Is(err, types.ErrKeyNotFound) {
		// Missing key is a notice, not a failure.
		fmt.Fprintf(cmd.OutOrStdout(), "Key %q not in template; nothing renamed\n", templateFrom)
		return nil
	}
	if err != nil {
		return fmt.Errorf("rename key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed key %q to %q\n", templateFrom, templateTo)
	return nil
}

func runTemplateRemove(cmd *cobra.Command, args []string) error {
	store, _, err := templateStore()
	if err != nil {
		return err
	}

	err = store.RemoveKey(templateKey)
	if errors.Is(err, types.ErrKeyNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "Key %q not in template; nothing removed\n", templateKey)
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed key %q\n", templateKey)
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	store, _, err := templateStore()
	if err != nil {
		return err
	}

	tmpl, err := store.Load()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(tmpl, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
