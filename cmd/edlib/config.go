package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neil-edlib/edlib/internal/iniconf"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect ini configuration files",
}

func init() {
	configCmd.AddCommand(newConfigLintCmd())
	rootCmd.AddCommand(configCmd)
}

func newConfigLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>",
		Short: "Load an ini config file (following includes) and report what it resolved to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := iniconf.LoadFromPath(args[0])
			if err != nil {
				return fmt.Errorf("config lint: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "global attributes: %d\n", cfg.Global.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "module triggers: %d\n", cfg.Modules.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "file rules: %d\n", len(cfg.Files))
			for _, rule := range cfg.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "  file:%s -> %d attribute(s)\n", rule.Glob, rule.Attrs.Len())
			}
			return nil
		},
	}
}
