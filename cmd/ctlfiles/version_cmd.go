package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctlfiles/pkg/ctlfiles"
)

const modulePath = "github.com/mesh-intelligence/ctlfiles"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ctlfiles version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "ctlfiles v%s\nmodule: %s\n", ctlfiles.Version, modulePath)
		return nil
	},
}
