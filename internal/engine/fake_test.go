package engine

import (
	"context"

	"github.com/bianoble/git-partial/internal/backend"
)

const (
	commitA = "0123456789abcdef0123456789abcdef01234567"
	commitB = "89abcdef0123456789abcdef0123456789abcdef"
	commitC = "fedcba9876543210fedcba9876543210fedcba98"
)

// fakeBackend records calls and answers from its fields.
type fakeBackend struct {
	calls []string

	selectionEnabled bool
	commit           string
	mergedCommit     string
	branch           string
	remoteCommit     string
	ancestor         bool
	changes          []string

	selection []string
	mergedRef string

	cloneErr    error
	setErr      error
	fetchErr    error
	branchErr   error
	mergeErr    error
	ancestorErr error
	resolveErr  error
}

var _ backend.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		selectionEnabled: true,
		commit:           commitA,
		branch:           "main",
		remoteCommit:     commitA,
	}
}

func (f *fakeBackend) count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) CloneWithFiltering(_ context.Context, _, _ string) error {
	f.calls = append(f.calls, "clone")
	return f.cloneErr
}

func (f *fakeBackend) SetSelection(_ context.Context, _ string, patterns []string) error {
	f.calls = append(f.calls, "set")
	if f.setErr != nil {
		return f.setErr
	}
	f.selection = append([]string(nil), patterns...)
	return nil
}

func (f *fakeBackend) CurrentCommit(_ context.Context, _ string) (string, error) {
	f.calls = append(f.calls, "commit")
	return f.commit, nil
}

func (f *fakeBackend) IsSelectionModeEnabled(_ context.Context, _ string) (bool, error) {
	f.calls = append(f.calls, "enabled")
	return f.selectionEnabled, nil
}

func (f *fakeBackend) FetchRemote(_ context.Context, _ string, _ bool) error {
	f.calls = append(f.calls, "fetch")
	return f.fetchErr
}

func (f *fakeBackend) CurrentBranch(_ context.Context, _ string) (string, error) {
	f.calls = append(f.calls, "branch")
	return f.branch, f.branchErr
}

func (f *fakeBackend) FastForwardMerge(_ context.Context, _, ref string) error {
	f.calls = append(f.calls, "merge")
	f.mergedRef = ref
	if f.mergeErr != nil {
		return f.mergeErr
	}
	if f.mergedCommit != "" {
		f.commit = f.mergedCommit
	}
	return nil
}

func (f *fakeBackend) IsAncestor(_ context.Context, _, _, _ string) (bool, error) {
	f.calls = append(f.calls, "ancestor")
	return f.ancestor, f.ancestorErr
}

func (f *fakeBackend) ResolveRef(_ context.Context, _, _ string) (string, error) {
	f.calls = append(f.calls, "resolve")
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return f.remoteCommit, nil
}

func (f *fakeBackend) WorkingTreeChanges(_ context.Context, _ string) ([]string, error) {
	f.calls = append(f.calls, "changes")
	return f.changes, nil
}
