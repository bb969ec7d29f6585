package engine

import (
	"context"
	"fmt"

	"github.com/bianoble/git-partial/internal/logging"
	"github.com/bianoble/git-partial/internal/metadata"
	"github.com/bianoble/git-partial/internal/selector"
)

// ExtendSelection adds newPaths to the recorded selection of root.
//
// The union is taken on the pattern strings: a literal path is added even
// when an existing glob already matches it. When nothing new is added the
// call neither touches the backend nor rewrites the record.
func (e *Engine) ExtendSelection(ctx context.Context, root string, newPaths []string) (*ExtendResult, error) {
	const op = "add paths"
	logger := logging.LoggerFromContext(ctx).WithField("root", root)

	if err := validatePaths(op, root, newPaths); err != nil {
		return nil, err
	}
	if err := e.requireSelectionMode(ctx, op, root); err != nil {
		return nil, err
	}

	rec, err := metadata.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading checkout metadata: %w", err)
	}

	final := rec.SelectedPaths.Union(newPaths...)
	result := &ExtendResult{Paths: final.Sorted()}
	if final.Equal(rec.SelectedPaths) {
		logger.Info("all paths already selected")
		return result, nil
	}

	added := metadata.PathSet{}
	for _, p := range newPaths {
		if !rec.SelectedPaths.Has(p) {
			added.Add(p)
		}
	}
	result.Added = added.Sorted()

	if existing, err := selector.New(rec.SelectedPaths.Sorted()); err == nil {
		result.Covered = existing.Covered(result.Added)
	} else {
		logger.WithError(err).Debug("recorded selection does not compile; skipping coverage hint")
	}
	if len(result.Covered) > 0 {
		logger.WithField("paths", result.Covered).Info("paths already matched by an existing pattern")
	}

	logger.WithField("paths", result.Paths).Debug("setting sparse checkout paths")
	if err := e.Backend.SetSelection(ctx, root, result.Paths); err != nil {
		return nil, fmt.Errorf("setting sparse checkout paths: %w", err)
	}

	rec.SelectedPaths = final
	if err := metadata.Save(root, rec); err != nil {
		return nil, err
	}

	logger.WithField("added", result.Added).Info("selection extended")
	return result, nil
}
