package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bianoble/git-partial/pkg/gitpartial"
)

// newClient builds a library client from the effective settings.
func newClient() *gitpartial.Client {
	return gitpartial.New(gitpartial.Options{
		GitPath: settings.Git,
		Remote:  settings.Remote,
		Filter:  settings.Filter,
		Abbrev:  settings.Abbrev,
	})
}

// workingRoot returns the absolute working-copy root from --dir.
func workingRoot() (string, error) {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return abs, nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(out, format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
