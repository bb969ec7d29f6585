package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <path>...",
	Short: "Check which paths the current selection covers",
	Long: `Reports for each path whether the recorded selection covers it, using
shell-glob rules ('*' within a segment, '**' across segments). git's own
sparse-checkout matching can differ in edge cases; the working tree is the
final word.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workingRoot()
		if err != nil {
			return err
		}

		results, err := newClient().Match(cmd.Context(), root, args)
		if err != nil {
			return err
		}

		for _, r := range results {
			state := "not selected"
			if r.Selected {
				state = "selected"
			}
			fmt.Fprintf(out, "%-14s %s\n", state, r.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
