package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bianoble/git-partial/internal/config"
)

var (
	initConfigPath  string
	initConfigForce bool
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Create a starter git-partial.yaml settings file",
	Long: `Writes a commented settings file holding the built-in defaults. Without
--path it goes to the user config directory
($XDG_CONFIG_HOME/git-partial/git-partial.yaml).

Use --force to overwrite an existing file.`,
	Args: cobra.NoArgs,
	// Existing settings are not loaded: a broken file must not block
	// writing a fresh one.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := initConfigPath
		if outPath == "" {
			outPath = config.DefaultUserConfigPath()
		}
		if outPath == "" {
			return errors.New("cannot determine the user config directory; pass --path")
		}
		abs, err := filepath.Abs(outPath)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		if err := config.WriteStarter(abs, initConfigForce); err != nil {
			return err
		}

		info("Created %s", abs)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().StringVar(&initConfigPath, "path", "", "file to write (default: user config directory)")
	initConfigCmd.Flags().BoolVar(&initConfigForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initConfigCmd)
}
