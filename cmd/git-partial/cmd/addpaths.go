package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var addPathsCmd = &cobra.Command{
	Use:   "add-paths <path>...",
	Short: "Add paths to the partial checkout",
	Long: `Adds paths or globs to the selection of the checkout in --dir and
materializes the new files. Paths already selected are ignored; if nothing is
new, neither git nor the checkout metadata is touched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workingRoot()
		if err != nil {
			return err
		}

		res, err := newClient().AddPaths(cmd.Context(), root, args)
		if err != nil {
			return err
		}

		if !res.Changed() {
			info("No new paths to add.")
			return nil
		}
		info("Added %d path(s): %s", len(res.Added), strings.Join(res.Added, ", "))
		for _, p := range res.Covered {
			info("  note: %s was already matched by an existing pattern", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addPathsCmd)
}
