package engine

import (
	"context"
	"fmt"

	"github.com/bianoble/git-partial/internal/logging"
	"github.com/bianoble/git-partial/internal/metadata"
	"github.com/bianoble/git-partial/internal/selector"
)

// Match reports for each candidate whether the recorded selection of root
// covers it. Matching uses shell-glob semantics, which git's sparse-checkout
// patterns only approximate.
func (e *Engine) Match(ctx context.Context, root string, candidates []string) ([]MatchResult, error) {
	if len(candidates) == 0 {
		return nil, &PreconditionError{Op: "match", Path: root, Err: ErrNoPaths}
	}

	rec, err := metadata.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading checkout metadata: %w", err)
	}

	sel, err := selector.New(rec.SelectedPaths.Sorted())
	if err != nil {
		return nil, fmt.Errorf("compiling recorded selection: %w", err)
	}
	logging.LoggerFromContext(ctx).WithField("root", root).
		WithField("patterns", sel.Patterns()).Debug("matching against recorded selection")

	results := make([]MatchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, MatchResult{Path: c, Selected: sel.Matches(c)})
	}
	return results, nil
}
