package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neil-edlib/edlib/pkg/rexel"
)

var regexAnchored bool

var regexCmd = &cobra.Command{
	Use:   "regex",
	Short: "Exercise the regex engine directly",
}

func init() {
	testCmd := &cobra.Command{
		Use:   "test <pattern> <input>",
		Short: "Compile pattern and report the first match against input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, text := args[0], args[1]
			m, err := rexel.New(pattern, regexAnchored)
			if err != nil {
				return fmt.Errorf("regex test: %w", err)
			}
			input := []rune(text)
			match := m.Find(input, 0, rexel.TextFlagsAt(input))
			if match == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "match %d-%d: %q\n", match.Start, match.End, string(input[match.Start:match.End]))
			for i, cap := range match.Captures {
				if cap[0] < 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "  $%d: (unset)\n", i)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  $%d: %q\n", i, string(input[cap[0]:cap[1]]))
			}
			return nil
		},
	}
	testCmd.Flags().BoolVar(&regexAnchored, "anchored", false, "anchor the match at the search start")

	expandCmd := &cobra.Command{
		Use:   "expand <pattern> <input> <template>",
		Short: "Match pattern against input, then expand template against the captures",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, text, template := args[0], args[1], args[2]
			m, err := rexel.New(pattern, regexAnchored)
			if err != nil {
				return fmt.Errorf("regex expand: %w", err)
			}
			input := []rune(text)
			match := m.Find(input, 0, rexel.TextFlagsAt(input))
			if match == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), rexel.Expand(template, input, match))
			return nil
		},
	}

	regexCmd.AddCommand(testCmd, expandCmd)
	rootCmd.AddCommand(regexCmd)
}
