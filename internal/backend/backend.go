// Package backend executes selection and inspection operations against a git
// working copy. The engine only ever talks to git through the Backend
// interface.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend is the narrow set of version-control capabilities the sync engine
// needs.
type Backend interface {
	// CloneWithFiltering clones url into dest with history filtering enabled
	// and an empty path selection.
	CloneWithFiltering(ctx context.Context, url, dest string) error

	// SetSelection replaces the active path selection with exactly patterns
	// and updates the working tree to match.
	SetSelection(ctx context.Context, root string, patterns []string) error

	// CurrentCommit returns the commit checked out in root.
	CurrentCommit(ctx context.Context, root string) (string, error)

	// IsSelectionModeEnabled reports whether path selection is active.
	IsSelectionModeEnabled(ctx context.Context, root string) (bool, error)

	// FetchRemote updates remote-tracking refs without touching the tree.
	FetchRemote(ctx context.Context, root string, quiet bool) error

	// CurrentBranch returns the active branch name, or "" when HEAD is
	// detached.
	CurrentBranch(ctx context.Context, root string) (string, error)

	// FastForwardMerge advances the current branch to ref. It fails with an
	// error wrapping ErrNonFastForward when histories have diverged.
	FastForwardMerge(ctx context.Context, root, ref string) error

	// IsAncestor reports whether commit a is reachable from commit b.
	IsAncestor(ctx context.Context, root, a, b string) (bool, error)

	// ResolveRef resolves a ref name to a commit id.
	ResolveRef(ctx context.Context, root, name string) (string, error)

	// WorkingTreeChanges returns the short-form list of uncommitted changes.
	WorkingTreeChanges(ctx context.Context, root string) ([]string, error)
}

// ErrNonFastForward is returned when a merge would need more than a branch
// pointer move.
var ErrNonFastForward = errors.New("not possible to fast-forward")

// IsNonFastForward returns true if the error is a non-fast-forward or wraps one
// and false otherwise.
func IsNonFastForward(err error) bool {
	return errors.Is(err, ErrNonFastForward)
}

// CommandError is a failed git invocation. Output carries git's own
// diagnostic verbatim.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := "git " + strings.Join(e.Args, " ") + " failed"
	if e.Output != "" {
		msg += ": " + e.Output
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%s)", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// AnchorPattern converts a stored selection pattern into the line given to
// git. A bare root-level name (no separator, no wildcard) is anchored with a
// leading "/" so it does not also match nested files of the same name. A
// leading "!" or "#" is escaped so git reads neither a negation nor a
// comment.
func AnchorPattern(p string) string {
	if !strings.ContainsAny(p, "/*?[") {
		return "/" + p
	}
	if strings.HasPrefix(p, "!") || strings.HasPrefix(p, "#") {
		return `\` + p
	}
	return p
}
