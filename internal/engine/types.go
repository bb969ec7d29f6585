package engine

import (
	"errors"
	"fmt"
)

// Precondition failures. They are always wrapped in a *PreconditionError.
var (
	ErrDestinationNotEmpty = errors.New("destination directory is not empty")
	ErrDestinationNotDir   = errors.New("destination exists and is not a directory")
	ErrNoPaths             = errors.New("at least one path must be specified")
	ErrNoRemoteURL         = errors.New("remote URL is required")
	ErrInvalidPattern      = errors.New("invalid path pattern")
	ErrNotPartialCheckout  = errors.New("not a partial checkout (sparse checkout is not enabled)")
	ErrDetachedHead        = errors.New("HEAD is detached; check out a branch first")
)

// PreconditionError reports that a flow refused to start. Nothing has been
// changed on disk when one is returned.
type PreconditionError struct {
	Op   string
	Path string
	Err  error
}

func (e *PreconditionError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// IsPrecondition returns true if err is or wraps a *PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// ExtendResult holds the outcome of an ExtendSelection call.
type ExtendResult struct {
	// Paths is the full selection after the call, sorted.
	Paths []string
	// Added lists the patterns that were not selected before, sorted.
	Added []string
	// Covered lists added literal paths that the previous selection already
	// matched. Git's own matching may still differ.
	Covered []string
}

// Changed reports whether the selection grew.
func (r *ExtendResult) Changed() bool {
	return len(r.Added) > 0
}

// RefreshResult holds the outcome of a Refresh call.
type RefreshResult struct {
	Branch string
	Before string
	After  string
}

// Advanced reports whether the recorded commit moved.
func (r *RefreshResult) Advanced() bool {
	return r.Before != r.After
}

// MatchResult reports whether one candidate path is covered by the recorded
// selection.
type MatchResult struct {
	Path     string
	Selected bool
}
