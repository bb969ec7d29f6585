package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the partial checkout",
	Long: `Fetches the remote quietly and shows the current branch, how the last
synced commit relates to the remote branch (up-to-date, behind, diverged),
the selected paths and any local changes.

A directory that is not a git-partial checkout is reported, not treated as
an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workingRoot()
		if err != nil {
			return err
		}

		text, err := newClient().StatusText(cmd.Context(), root)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
