// Package engine implements the partial-checkout flows: initialize, extend
// the selection, refresh from the remote and report status. Every flow takes
// the working-copy root explicitly.
//
// Within a flow the backend is always updated before the checkout record, so
// a crash between the two leaves a record that understates the selection but
// never overstates it. Nothing is rolled back on failure.
package engine

import (
	"context"
	"fmt"

	"github.com/bianoble/git-partial/internal/backend"
	"github.com/bianoble/git-partial/internal/selector"
)

// Engine runs flows against a Backend.
type Engine struct {
	Backend backend.Backend
	// Remote names the remote whose branches are tracked. Defaults to
	// backend.DefaultRemote.
	Remote string
	// Abbrev is the commit abbreviation length used in status reports.
	Abbrev int
}

func (e *Engine) remote() string {
	if e.Remote == "" {
		return backend.DefaultRemote
	}
	return e.Remote
}

// remoteRef returns the remote-tracking counterpart of branch.
func (e *Engine) remoteRef(branch string) string {
	return e.remote() + "/" + branch
}

func (e *Engine) requireSelectionMode(ctx context.Context, op, root string) error {
	enabled, err := e.Backend.IsSelectionModeEnabled(ctx, root)
	if err != nil {
		return fmt.Errorf("checking sparse checkout: %w", err)
	}
	if !enabled {
		return &PreconditionError{Op: op, Path: root, Err: ErrNotPartialCheckout}
	}
	return nil
}

func validatePaths(op, root string, paths []string) error {
	if len(paths) == 0 {
		return &PreconditionError{Op: op, Path: root, Err: ErrNoPaths}
	}
	if err := selector.ValidatePatterns(paths); err != nil {
		return &PreconditionError{Op: op, Path: root, Err: fmt.Errorf("%w: %w", ErrInvalidPattern, err)}
	}
	return nil
}
