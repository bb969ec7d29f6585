package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bianoble/git-partial/internal/report"
)

var clonePaths []string

var cloneCmd = &cobra.Command{
	Use:   "clone <url> <destination> [path...]",
	Short: "Clone only part of a repository",
	Long: `Clones the repository at <url> into <destination> with blob filtering and
materializes only the selected paths. Paths come from --paths (repeatable) and
any arguments after the destination. Globs such as 'docs/**' are accepted.

The destination must not exist or must be an empty directory.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		dest, err := filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("resolving destination: %w", err)
		}
		paths := append(append([]string(nil), clonePaths...), args[2:]...)

		info("Cloning %s into %s", url, dest)
		rec, err := newClient().Clone(cmd.Context(), url, dest, paths)
		if err != nil {
			return err
		}

		info("Selected paths:")
		for _, p := range rec.SelectedPaths.Sorted() {
			info("  - %s", p)
		}
		info("Checked out %s", report.Abbrev(rec.LastCommit, settings.Abbrev))
		return nil
	},
}

func init() {
	cloneCmd.Flags().StringArrayVarP(&clonePaths, "paths", "p", nil, "path or glob to check out (repeatable)")
	rootCmd.AddCommand(cloneCmd)
}
