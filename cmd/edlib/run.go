package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/neil-edlib/edlib/internal/tui"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Launch the reference terminal front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.New(), tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("edlib run: %w", err)
			}
			return nil
		},
	})
}
