package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Starter is the commented settings file written by init-config. Every value
// shown is the built-in default.
const Starter = `# git-partial settings
version: 1

# Remote whose branches smart-pull and status compare against.
remote: origin

# Partial clone filter passed to git clone --filter.
filter: blob:none

# git binary to run. Needs 2.35.0 or newer.
git: git

# Length of abbreviated commit ids in status output (4-40).
abbrev: 7

# One of: trace, debug, info, warn, error.
log_level: warn
`

// ErrExists is returned by WriteStarter when the target file exists and
// overwriting was not requested.
var ErrExists = errors.New("config file already exists")

// WriteStarter writes Starter to path, creating parent directories.
func WriteStarter(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Starter), 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
