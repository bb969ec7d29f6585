package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/bianoble/git-partial/internal/logging"
	"github.com/bianoble/git-partial/internal/metadata"
	"github.com/bianoble/git-partial/internal/report"
)

// ReportStatus inspects root without modifying it. A directory with no
// checkout record yields a NotManaged report, not an error.
func (e *Engine) ReportStatus(ctx context.Context, root string) (*report.Status, error) {
	logger := logging.LoggerFromContext(ctx).WithField("root", root)
	st := &report.Status{Root: root, Abbrev: e.Abbrev}

	rec, err := metadata.Load(root)
	if errors.Is(err, metadata.ErrNotFound) {
		logger.Debug("no checkout metadata")
		st.Kind = report.NotManaged
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading checkout metadata: %w", err)
	}

	enabled, err := e.Backend.IsSelectionModeEnabled(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("checking sparse checkout: %w", err)
	}
	if !enabled {
		st.Kind = report.SelectionInactive
		return st, nil
	}

	st.Kind = report.Full
	st.RemoteURL = rec.RemoteURL
	st.SelectedPaths = rec.SelectedPaths.Sorted()
	st.LocalCommit = rec.LastCommit

	if err := e.Backend.FetchRemote(ctx, root, true); err != nil {
		return nil, fmt.Errorf("fetching remote changes: %w", err)
	}

	st.Branch, err = e.Backend.CurrentBranch(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("determining current branch: %w", err)
	}
	st.Divergence, st.RemoteCommit = e.classify(ctx, root, rec, st.Branch)

	st.Changes, err = e.Backend.WorkingTreeChanges(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("listing local changes: %w", err)
	}

	return st, nil
}

// classify compares the recorded commit with the remote counterpart of
// branch. Lookup failures degrade the classification instead of failing the
// report.
func (e *Engine) classify(ctx context.Context, root string, rec *metadata.Record, branch string) (report.Divergence, string) {
	logger := logging.LoggerFromContext(ctx).WithField("root", root)
	if branch == "" {
		return report.Unknown, ""
	}

	remote, err := e.Backend.ResolveRef(ctx, root, e.remoteRef(branch))
	if err != nil {
		logger.WithError(err).Debug("remote branch did not resolve")
		return report.Unknown, ""
	}

	switch {
	case !rec.HasCommit():
		return report.Diverged, remote
	case rec.LastCommit == remote:
		return report.UpToDate, remote
	}

	ok, err := e.Backend.IsAncestor(ctx, root, rec.LastCommit, remote)
	if err != nil {
		logger.WithError(err).Debug("ancestor check failed")
		return report.Diverged, remote
	}
	if ok {
		return report.Behind, remote
	}
	return report.Diverged, remote
}
