package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/bianoble/git-partial/internal/logging"
)

// MinGitVersion is the oldest git that supports
// "sparse-checkout set --no-cone --stdin".
const MinGitVersion = "2.35.0"

const (
	DefaultGitPath = "git"
	DefaultRemote  = "origin"
	DefaultFilter  = "blob:none"
)

// ShellOptions configures a ShellBackend. Zero values select the defaults.
type ShellOptions struct {
	GitPath string
	Remote  string
	Filter  string
}

var _ Backend = (*ShellBackend)(nil)

// ShellBackend implements Backend by running the git binary.
type ShellBackend struct {
	gitPath string
	remote  string
	filter  string

	// versionMu guards the cached outcome of the git version check. Only a
	// completed check is cached; a failed "git version" run is retried.
	versionMu      sync.Mutex
	versionChecked bool
	versionErr     error
}

// NewShellBackend creates a Backend that shells out to git.
func NewShellBackend(opts ShellOptions) *ShellBackend {
	b := &ShellBackend{
		gitPath: opts.GitPath,
		remote:  opts.Remote,
		filter:  opts.Filter,
	}
	if b.gitPath == "" {
		b.gitPath = DefaultGitPath
	}
	if b.remote == "" {
		b.remote = DefaultRemote
	}
	if b.filter == "" {
		b.filter = DefaultFilter
	}
	return b
}

// Remote returns the remote name used for clone and fetch.
func (b *ShellBackend) Remote() string {
	return b.remote
}

func (b *ShellBackend) CloneWithFiltering(ctx context.Context, url, dest string) error {
	if err := b.ensureVersion(ctx); err != nil {
		return err
	}
	_, err := b.run(ctx, "", nil,
		"clone", "--filter="+b.filter, "--sparse", "--origin", b.remote, "--", url, dest)
	return err
}

func (b *ShellBackend) SetSelection(ctx context.Context, root string, patterns []string) error {
	if err := b.ensureVersion(ctx); err != nil {
		return err
	}
	var lines strings.Builder
	for _, p := range patterns {
		lines.WriteString(AnchorPattern(filepath.ToSlash(p)))
		lines.WriteByte('\n')
	}
	_, err := b.run(ctx, root, strings.NewReader(lines.String()),
		"sparse-checkout", "set", "--no-cone", "--stdin")
	return err
}

func (b *ShellBackend) CurrentCommit(ctx context.Context, root string) (string, error) {
	out, err := b.run(ctx, root, nil, "rev-parse", "HEAD")
	return strings.TrimSpace(out), err
}

func (b *ShellBackend) IsSelectionModeEnabled(ctx context.Context, root string) (bool, error) {
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	out, err := b.run(ctx, root, nil, "config", "--bool", "--get", "core.sparseCheckout")
	if exitCode(err) == 1 {
		// Key not set.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "true", nil
}

func (b *ShellBackend) FetchRemote(ctx context.Context, root string, quiet bool) error {
	args := []string{"fetch", b.remote}
	if quiet {
		args = append(args, "--quiet")
	}
	_, err := b.run(ctx, root, nil, args...)
	return err
}

func (b *ShellBackend) CurrentBranch(ctx context.Context, root string) (string, error) {
	out, err := b.run(ctx, root, nil, "branch", "--show-current")
	return strings.TrimSpace(out), err
}

func (b *ShellBackend) FastForwardMerge(ctx context.Context, root, ref string) error {
	_, err := b.run(ctx, root, nil, "merge", "--ff-only", ref)
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) &&
		strings.Contains(strings.ToLower(cmdErr.Output), "not possible to fast-forward") {
		return fmt.Errorf("%w: %w", ErrNonFastForward, err)
	}
	return err
}

func (b *ShellBackend) IsAncestor(ctx context.Context, root, a, c string) (bool, error) {
	_, err := b.run(ctx, root, nil, "merge-base", "--is-ancestor", a, c)
	switch {
	case err == nil:
		return true, nil
	case exitCode(err) == 1:
		return false, nil
	default:
		return false, err
	}
}

func (b *ShellBackend) ResolveRef(ctx context.Context, root, name string) (string, error) {
	out, err := b.run(ctx, root, nil, "rev-parse", "--verify", "--end-of-options", name+"^{commit}")
	return strings.TrimSpace(out), err
}

func (b *ShellBackend) WorkingTreeChanges(ctx context.Context, root string) ([]string, error) {
	out, err := b.run(ctx, root, nil, "status", "--short")
	if err != nil {
		return nil, err
	}
	// Leading spaces are significant in short status output.
	out = strings.TrimRight(out, "\r\n")
	if strings.TrimSpace(out) == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Version returns the version of the configured git binary.
func (b *ShellBackend) Version(ctx context.Context) (*semver.Version, error) {
	out, err := b.run(ctx, "", nil, "version")
	if err != nil {
		return nil, err
	}
	return ParseGitVersion(out)
}

func (b *ShellBackend) ensureVersion(ctx context.Context) error {
	b.versionMu.Lock()
	defer b.versionMu.Unlock()
	if b.versionChecked {
		return b.versionErr
	}

	v, err := b.Version(ctx)
	if err != nil {
		return fmt.Errorf("determining git version: %w", err)
	}
	b.versionErr = RequireMinVersion(v)
	b.versionChecked = true
	return b.versionErr
}

// ParseGitVersion extracts the release number from "git version" output such
// as "git version 2.39.2 (Apple Git-143)" or "git version 2.45.1.windows.1".
func ParseGitVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return nil, fmt.Errorf("unrecognized git version output %q", strings.TrimSpace(output))
	}
	parts := strings.Split(fields[2], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, fmt.Errorf("parsing git version %q: %w", fields[2], err)
	}
	return v, nil
}

// RequireMinVersion fails when v is older than MinGitVersion.
func RequireMinVersion(v *semver.Version) error {
	c, err := semver.NewConstraint(">= " + MinGitVersion)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("git %s is too old: git-partial needs git %s or newer", v, MinGitVersion)
	}
	return nil
}

// run executes git with args, in dir when dir is non-empty, and returns
// stdout. On failure the returned *CommandError carries stderr.
func (b *ShellBackend) run(ctx context.Context, dir string, stdin io.Reader, args ...string) (string, error) {
	fullArgs := args
	if dir != "" {
		fullArgs = append([]string{"-C", dir}, args...)
	}
	cmd := exec.CommandContext(ctx, b.gitPath, fullArgs...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.LoggerFromContext(ctx).WithField("dir", dir).Debugf("git %s", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		return stdout.String(), &CommandError{
			Args:   args,
			Output: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
