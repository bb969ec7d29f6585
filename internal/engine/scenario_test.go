package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bianoble/git-partial/internal/backend"
	"github.com/bianoble/git-partial/internal/metadata"
	"github.com/bianoble/git-partial/internal/report"
	"github.com/bianoble/git-partial/internal/testutil"
)

var monorepoFiles = map[string]string{
	"README.md":     "# Monorepo\n",
	"src/core.x":    "core\n",
	"src/utils.x":   "utils\n",
	"docs/guide.md": "guide\n",
	"docs/a.md":     "a\n",
	"docs/b.md":     "b\n",
}

func newGitEngine(t *testing.T) *Engine {
	t.Helper()
	testutil.RequireGit(t)
	return &Engine{Backend: backend.NewShellBackend(backend.ShellOptions{})}
}

func TestScenarioInitialize(t *testing.T) {
	eng := newGitEngine(t)
	origin := testutil.NewRepo(t, monorepoFiles)
	dest := filepath.Join(t.TempDir(), "wc")

	_, err := eng.Initialize(context.Background(), testutil.FileURL(origin), dest, []string{"README.md", "src/core.x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "src/core.x"}, testutil.ListFiles(t, dest))

	rec, err := metadata.Load(dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "src/core.x"}, rec.SelectedPaths.Sorted())
	assert.Equal(t, testutil.Git(t, origin, "rev-parse", "HEAD"), rec.LastCommit)
}

func TestScenarioExtendSelection(t *testing.T) {
	eng := newGitEngine(t)
	ctx := context.Background()
	origin := testutil.NewRepo(t, monorepoFiles)
	dest := filepath.Join(t.TempDir(), "wc")

	_, err := eng.Initialize(ctx, testutil.FileURL(origin), dest, []string{"README.md"})
	require.NoError(t, err)
	require.Equal(t, []string{"README.md"}, testutil.ListFiles(t, dest))

	_, err = eng.ExtendSelection(ctx, dest, []string{"docs/**"})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"README.md", "docs/a.md", "docs/b.md", "docs/guide.md"},
		testutil.ListFiles(t, dest),
	)
	assert.Equal(t, []string{"README.md", "docs/**"}, loadPaths(t, dest))
}

func TestScenarioRefreshAndStatus(t *testing.T) {
	eng := newGitEngine(t)
	ctx := context.Background()
	origin := testutil.NewRepo(t, monorepoFiles)
	dest := filepath.Join(t.TempDir(), "wc")

	rec, err := eng.Initialize(ctx, testutil.FileURL(origin), dest, []string{"README.md"})
	require.NoError(t, err)
	initial := rec.LastCommit

	st, err := eng.ReportStatus(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, report.UpToDate, st.Divergence)
	assert.Equal(t, "main", st.Branch)

	// A change outside the selection still moves the recorded commit.
	next := testutil.Commit(t, origin, map[string]string{"src/utils.x": "utils v2\n"}, "outside selection")

	st, err = eng.ReportStatus(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, report.Behind, st.Divergence)
	assert.Equal(t, next, st.RemoteCommit)
	assert.Equal(t, initial, loadCommit(t, dest))

	result, err := eng.Refresh(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, initial, result.Before)
	assert.Equal(t, next, result.After)
	assert.Equal(t, next, loadCommit(t, dest))
	assert.Equal(t, []string{"README.md"}, testutil.ListFiles(t, dest))

	st, err = eng.ReportStatus(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, report.UpToDate, st.Divergence)
}

func TestScenarioRefreshDiverged(t *testing.T) {
	eng := newGitEngine(t)
	ctx := context.Background()
	origin := testutil.NewRepo(t, monorepoFiles)
	dest := filepath.Join(t.TempDir(), "wc")

	rec, err := eng.Initialize(ctx, testutil.FileURL(origin), dest, []string{"README.md"})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dest, "README.md"), []byte("local\n"), 0644))
	testutil.Git(t, dest, "commit", "-am", "local")
	local := testutil.Git(t, dest, "rev-parse", "HEAD")
	testutil.Commit(t, origin, map[string]string{"README.md": "remote\n"}, "remote")

	_, err = eng.Refresh(ctx, dest)
	require.Error(t, err)
	assert.True(t, backend.IsNonFastForward(err), "unexpected error: %v", err)
	assert.Equal(t, rec.LastCommit, loadCommit(t, dest))

	// The record still holds the commit from the clone, which is an
	// ancestor of both sides, so status reports behind rather than
	// inspecting the unrecorded local commit.
	st, err := eng.ReportStatus(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, report.Behind, st.Divergence)
	assert.NotEqual(t, local, st.LocalCommit)
}

func TestScenarioStatusNotManaged(t *testing.T) {
	eng := newGitEngine(t)
	root := t.TempDir()

	st, err := eng.ReportStatus(context.Background(), root)
	require.NoError(t, err)
	out, err := report.Render(st)
	require.NoError(t, err)
	assert.Equal(t, root+" is not a git-partial checkout (metadata not found).\n", out)
}

func TestScenarioBraceLiteralPath(t *testing.T) {
	eng := newGitEngine(t)
	origin := testutil.NewRepo(t, map[string]string{
		"README.md":       "# Notes\n",
		"notes/{draft.md": "draft\n",
		"notes/final.md":  "final\n",
	})
	dest := filepath.Join(t.TempDir(), "wc")

	_, err := eng.Initialize(context.Background(), testutil.FileURL(origin), dest, []string{"notes/{draft.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes/{draft.md"}, testutil.ListFiles(t, dest))
	assert.Equal(t, "notes/{draft.md", testutil.Git(t, dest, "sparse-checkout", "list"))
}
