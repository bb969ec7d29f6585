package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bianoble/git-partial/internal/metadata"
)

func TestMatch(t *testing.T) {
	eng := &Engine{Backend: newFakeBackend()}
	root := seedRecord(t, commitA, "README.md", "docs/**", "src/*.x")

	results, err := eng.Match(context.Background(), root, []string{
		"README.md",
		"docs/a/b.md",
		"src/core.x",
		"src/deep/core.x",
		"otherdir/a.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, []MatchResult{
		{Path: "README.md", Selected: true},
		{Path: "docs/a/b.md", Selected: true},
		{Path: "src/core.x", Selected: true},
		{Path: "src/deep/core.x", Selected: false},
		{Path: "otherdir/a.txt", Selected: false},
	}, results)
}

func TestMatchErrors(t *testing.T) {
	eng := &Engine{Backend: newFakeBackend()}

	_, err := eng.Match(context.Background(), t.TempDir(), []string{"a"})
	require.ErrorIs(t, err, metadata.ErrNotFound)

	_, err = eng.Match(context.Background(), seedRecord(t, commitA, "a"), nil)
	require.ErrorIs(t, err, ErrNoPaths)
}
