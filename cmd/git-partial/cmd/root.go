package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bianoble/git-partial/internal/config"
	"github.com/bianoble/git-partial/internal/logging"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	workDir    string
	configPath string
	logLevel   string
	quiet      bool
)

// settings is the effective configuration, loaded before every command.
var settings = config.Default()

// out is where command results are printed.
var out io.Writer = os.Stdout

var rootCmd = &cobra.Command{
	Use:   "git-partial",
	Short: "Work with large git repositories through partial checkouts",
	Long: `git-partial clones only the parts of a repository you need, remembers
that selection, widens it on request, fast-forwards it from the remote and
reports how the checkout relates to its remote branch.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(out, "git-partial %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", ".", "working-copy root")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an extra settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")

	rootCmd.AddCommand(versionCmd)
}

// setup loads settings and attaches a logger to the command context.
func setup(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.LoadLayered(config.LoadOptions{
		DiscoverOptions: config.DiscoverOptions{ExplicitPath: configPath},
	})
	if err != nil {
		return err
	}
	settings = cfg

	levelName := settings.LogLevel
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q", levelName)
	}
	logger := logging.NewLogger(os.Stderr, level)
	if quiet {
		// Failures still reach stderr through Execute.
		logger = logging.NewDiscardLogger()
	}
	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), logger))
	return nil
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		errorf("%v", err)
		return err
	}
	return nil
}
