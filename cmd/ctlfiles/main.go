// Package main provides the ctlfiles CLI: template editing, corpus
// reconciliation, filtered bulk modification, and the control table commit.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
