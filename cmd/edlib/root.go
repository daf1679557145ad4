// Command edlib is the reference CLI: it launches the terminal front end
// and exposes a few of the domain components (config loading, the regex
// engine, pane-tree inspection) as standalone subcommands, the way
// hivectl's cmd/hivectl lays out one cobra command per concern rather than
// one monolithic flag set.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:     "edlib",
	Short:   "A modular text-editor core: panes, marks, dispatch, and a regex engine",
	Version: "dev",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit machine-readable output where supported")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
