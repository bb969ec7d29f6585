package gitpartial

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/bianoble/git-partial/internal/logging"
	"github.com/bianoble/git-partial/internal/testutil"
)

func newOrigin(t *testing.T) string {
	t.Helper()
	return testutil.NewRepo(t, map[string]string{
		"README.md":         "# Monorepo\n",
		"services/api/main": "api\n",
		"services/web/main": "web\n",
		"docs/guide.md":     "guide\n",
	})
}

func TestClientLifecycle(t *testing.T) {
	testutil.RequireGit(t)
	ctx := context.Background()
	origin := newOrigin(t)
	dest := filepath.Join(t.TempDir(), "mono")
	client := New(Options{})

	rec, err := client.Clone(ctx, testutil.FileURL(origin), dest, []string{"README.md", "services/api/**"})
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if got := rec.SelectedPaths.Sorted(); len(got) != 2 {
		t.Errorf("selected = %v, want 2 paths", got)
	}
	if files := testutil.ListFiles(t, dest); len(files) != 2 {
		t.Errorf("files = %v, want README.md and services/api/main", files)
	}

	res, err := client.AddPaths(ctx, dest, []string{"docs/**"})
	if err != nil {
		t.Fatalf("AddPaths: %v", err)
	}
	if !res.Changed() {
		t.Error("AddPaths reported no change")
	}

	next := testutil.Commit(t, origin, map[string]string{"services/web/main": "web v2\n"}, "web")

	st, err := client.Status(ctx, dest)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Divergence != Behind {
		t.Errorf("divergence = %v, want behind", st.Divergence)
	}

	pull, err := client.SmartPull(ctx, dest)
	if err != nil {
		t.Fatalf("SmartPull: %v", err)
	}
	if pull.After != next {
		t.Errorf("after = %s, want %s", pull.After, next)
	}

	text, err := client.StatusText(ctx, dest)
	if err != nil {
		t.Fatalf("StatusText: %v", err)
	}
	if !strings.Contains(text, "Branch: main (Up-to-date)") {
		t.Errorf("unexpected status:\n%s", text)
	}
	if !strings.Contains(text, "  - docs/**\n") {
		t.Errorf("status does not list docs/**:\n%s", text)
	}

	matches, err := client.Match(ctx, dest, []string{"services/api/v1/handler", "services/web/main"})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !matches[0].Selected || matches[1].Selected {
		t.Errorf("matches = %+v", matches)
	}
}

func TestClientCloneIntoNonEmptyDirectory(t *testing.T) {
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "keep"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New(Options{}).Clone(context.Background(), "https://example.com/mono.git", dest, []string{"README.md"})
	if !errors.Is(err, ErrDestinationNotEmpty) {
		t.Fatalf("expected ErrDestinationNotEmpty, got %v", err)
	}
	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Errorf("expected *PreconditionError, got %T", err)
	}
	if !IsPrecondition(err) {
		t.Error("IsPrecondition should report the refusal")
	}
	if IsNonFastForward(err) {
		t.Error("IsNonFastForward should not match a precondition failure")
	}
}

func TestClientStatusTextNotManaged(t *testing.T) {
	root := t.TempDir()
	text, err := New(Options{}).StatusText(context.Background(), root)
	if err != nil {
		t.Fatalf("StatusText: %v", err)
	}
	want := root + " is not a git-partial checkout (metadata not found).\n"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestClientLogger(t *testing.T) {
	var buf bytes.Buffer
	client := New(Options{Logger: logging.NewLogger(&buf, log.DebugLevel)})

	if _, err := client.Status(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !strings.Contains(buf.String(), "no checkout metadata") {
		t.Errorf("client logger not used, got %q", buf.String())
	}

	// A logger already on the context wins.
	buf.Reset()
	var ctxBuf bytes.Buffer
	ctx := logging.ContextWithLogger(context.Background(), logging.NewLogger(&ctxBuf, log.DebugLevel))
	if _, err := client.Status(ctx, t.TempDir()); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if buf.Len() != 0 || ctxBuf.Len() == 0 {
		t.Errorf("context logger should take precedence")
	}
}

func TestNewRemoteDefaults(t *testing.T) {
	if got := New(Options{}).engine.Remote; got != "origin" {
		t.Errorf("default remote = %q, want origin", got)
	}
	if got := New(Options{Remote: "upstream"}).engine.Remote; got != "upstream" {
		t.Errorf("remote = %q, want upstream", got)
	}
}
