// Package testutil builds throwaway git repositories for tests that drive the
// real git binary.
package testutil

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
)

// minGit matches the backend's own requirement for sparse-checkout --stdin.
const minGit = ">= 2.35.0"

// RequireGit skips the test unless a recent enough git is on PATH, then
// isolates git from the user's configuration and sets a commit identity.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	out, err := exec.Command("git", "version").Output()
	if err != nil {
		t.Skipf("git version: %v", err)
	}
	fields := strings.Fields(string(out))
	if len(fields) < 3 {
		t.Skipf("unrecognized git version %q", out)
	}
	parts := strings.Split(fields[2], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		t.Skipf("unrecognized git version %q", out)
	}
	c, _ := semver.NewConstraint(minGit)
	if !c.Check(v) {
		t.Skipf("git %s is older than required %s", v, minGit)
	}

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Tests")
	t.Setenv("GIT_AUTHOR_EMAIL", "tests@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Tests")
	t.Setenv("GIT_COMMITTER_EMAIL", "tests@example.com")
	// Lazy blob fetches from a file:// promisor remote must be allowed.
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")
}

// Git runs git in dir and returns trimmed stdout, failing the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Fatalf("git %v: %v: %s", args, err, stderr)
	}
	return strings.TrimSpace(string(out))
}

// NewRepo creates a non-bare repository on branch main holding files and
// returns its directory. The repository allows filtered clones.
func NewRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	Git(t, dir, "init", "-b", "main")
	Git(t, dir, "config", "uploadpack.allowFilter", "true")
	Git(t, dir, "config", "uploadpack.allowAnySHA1InWant", "true")
	Commit(t, dir, files, "initial")
	return dir
}

// Commit writes files under dir, commits them and returns the new HEAD.
func Commit(t *testing.T, dir string, files map[string]string, msg string) string {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	Git(t, dir, "add", "-A")
	Git(t, dir, "commit", "-m", msg)
	return Git(t, dir, "rev-parse", "HEAD")
}

// FileURL returns a file:// URL for a local repository so that clone
// filtering is honoured instead of being skipped for local paths.
func FileURL(dir string) string {
	return "file://" + filepath.ToSlash(dir)
}

// ListFiles returns the slash-separated paths of regular files under root,
// sorted, ignoring git's and git-partial's own directories.
func ListFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == ".gitpartial" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(files)
	return files
}
