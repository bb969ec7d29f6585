package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/git-partial/internal/report"
	"github.com/bianoble/git-partial/pkg/gitpartial"
)

var smartPullCmd = &cobra.Command{
	Use:   "smart-pull",
	Short: "Fast-forward the partial checkout from its remote",
	Long: `Fetches the remote and fast-forwards the current branch to its remote
counterpart. Only selected paths are materialized. Fails without changing
anything if local and remote history have diverged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workingRoot()
		if err != nil {
			return err
		}

		res, err := newClient().SmartPull(cmd.Context(), root)
		if gitpartial.IsNonFastForward(err) {
			return fmt.Errorf("%w\nlocal and remote history have diverged; merge or rebase by hand, then run smart-pull again", err)
		}
		if err != nil {
			return err
		}

		if !res.Advanced() {
			info("Already up to date on %s.", res.Branch)
			return nil
		}
		before := res.Before
		if before == "" {
			before = report.UnknownCommit
		}
		info("Updated %s: %s -> %s",
			res.Branch,
			report.Abbrev(before, settings.Abbrev),
			report.Abbrev(res.After, settings.Abbrev))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(smartPullCmd)
}
