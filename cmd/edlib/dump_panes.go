package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neil-edlib/edlib/internal/tui"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dump-panes",
		Short: "Build the reference front end's pane tree and print it as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := tui.New()
			out, err := tui.DumpModel(m)
			if err != nil {
				return fmt.Errorf("dump-panes: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})
}
