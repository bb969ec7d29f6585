package engine

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/bianoble/git-partial/internal/logging"
	"github.com/bianoble/git-partial/internal/metadata"
)

// Refresh fetches the remote and fast-forwards the current branch to its
// remote-tracking counterpart. Diverged history is an error; the engine never
// merges or rebases. On success the record's commit is updated and saved
// whether or not any selected file changed.
func (e *Engine) Refresh(ctx context.Context, root string) (*RefreshResult, error) {
	const op = "smart pull"
	logger := logging.LoggerFromContext(ctx).WithField("root", root)

	if err := e.requireSelectionMode(ctx, op, root); err != nil {
		return nil, err
	}

	rec, err := metadata.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading checkout metadata: %w", err)
	}

	logger.WithField("remote", e.remote()).Info("fetching remote changes")
	if err := e.Backend.FetchRemote(ctx, root, false); err != nil {
		return nil, fmt.Errorf("fetching remote changes: %w", err)
	}

	branch, err := e.Backend.CurrentBranch(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("determining current branch: %w", err)
	}
	if branch == "" {
		return nil, &PreconditionError{Op: op, Path: root, Err: ErrDetachedHead}
	}

	ref := e.remoteRef(branch)
	logger.WithFields(log.Fields{"branch": branch, "ref": ref}).Debug("fast-forwarding")
	if err := e.Backend.FastForwardMerge(ctx, root, ref); err != nil {
		return nil, fmt.Errorf("fast-forwarding %s to %s: %w", branch, ref, err)
	}

	commit, err := e.Backend.CurrentCommit(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("reading current commit: %w", err)
	}

	result := &RefreshResult{Branch: branch, Before: rec.LastCommit, After: commit}
	if err := rec.SetLastCommit(commit); err != nil {
		return nil, fmt.Errorf("recording current commit: %w", err)
	}
	if err := metadata.Save(root, rec); err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{"branch": branch, "commit": commit}).Info("smart pull complete")
	return result, nil
}
