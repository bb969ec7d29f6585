// Package metadata persists the record of a partial checkout: its remote, the
// selected path patterns and the last commit the tool synced to.
package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	// DirName is the tool-owned directory at the working-copy root.
	DirName = ".gitpartial"

	fileName       = "metadata.yaml"
	legacyFileName = "metadata.json"
)

var (
	// ErrNotFound is returned by Load when no record exists.
	ErrNotFound = errors.New("checkout metadata not found")
	// ErrCorrupt is returned by Load when a record exists but cannot be used.
	ErrCorrupt = errors.New("checkout metadata is corrupt")
)

// WriteError reports a failure to persist a record.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing checkout metadata %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Path returns the record location for a working-copy root.
func Path(root string) string {
	return filepath.Join(root, DirName, fileName)
}

// LegacyPath returns the location used by earlier releases, which wrote JSON.
func LegacyPath(root string) string {
	return filepath.Join(root, DirName, legacyFileName)
}

// Load reads the record for root. JSON records from earlier releases are read
// when no YAML record exists; JSON is valid YAML so one decoder serves both.
func Load(root string) (*Record, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		path = LegacyPath(root)
		data, err = os.ReadFile(path)
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNotFound, Path(root))
	}
	if err != nil {
		return nil, fmt.Errorf("reading checkout metadata %s: %w", path, err)
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrCorrupt, path, err)
	}
	if rec.SelectedPaths == nil {
		rec.SelectedPaths = PathSet{}
	}

	if errs := Validate(&rec); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrCorrupt, path, errs[0])
	}

	return &rec, nil
}

// Save writes rec for root. The write goes to a uniquely named temporary file
// that is renamed over the record, so readers see the old or the new record
// and never a partial one.
func Save(root string, rec *Record) error {
	path := Path(root)

	data, err := yaml.Marshal(rec)
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("marshaling: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Path: path, Err: err}
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// Validate checks a Record for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(rec *Record) []string {
	var errs []string

	if rec.RemoteURL == "" {
		errs = append(errs, "'remote_url' is required")
	}
	if rec.LastCommit != "" && !ValidCommitID(rec.LastCommit) {
		errs = append(errs, fmt.Sprintf("'last_commit' %q is not a commit id", rec.LastCommit))
	}
	for p := range rec.SelectedPaths {
		if p == "" {
			errs = append(errs, "'checked_out_paths' contains an empty entry")
			break
		}
	}

	return errs
}
