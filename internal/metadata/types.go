package metadata

import (
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// commitPattern accepts full SHA-1 and SHA-256 object names.
var commitPattern = regexp.MustCompile(`^[0-9a-f]{40}([0-9a-f]{24})?$`)

// ValidCommitID reports whether id is a full, lower-case object name.
func ValidCommitID(id string) bool {
	return commitPattern.MatchString(id)
}

// Record is the durable state of one partial checkout.
type Record struct {
	// RemoteURL is set once at creation and never changed afterwards.
	RemoteURL string `yaml:"remote_url"`
	// SelectedPaths holds the patterns currently applied to the backend.
	SelectedPaths PathSet `yaml:"checked_out_paths"`
	// LastCommit is the commit the working tree was last brought to. Empty
	// until the first commit observation.
	LastCommit string `yaml:"last_commit,omitempty"`
}

// New returns a fresh record with no paths and no commit.
func New(remoteURL string) *Record {
	return &Record{
		RemoteURL:     remoteURL,
		SelectedPaths: PathSet{},
	}
}

// HasCommit reports whether a commit has been observed.
func (r *Record) HasCommit() bool {
	return r.LastCommit != ""
}

// SetLastCommit records id after checking that it is a full object name.
func (r *Record) SetLastCommit(id string) error {
	if !ValidCommitID(id) {
		return fmt.Errorf("malformed commit id %q", id)
	}
	r.LastCommit = id
	return nil
}

// PathSet is a set of path patterns. It serializes as a sorted list so the
// record file is stable across saves.
type PathSet map[string]struct{}

// NewPathSet builds a set from paths, dropping duplicates.
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s PathSet) Has(p string) bool {
	_, ok := s[p]
	return ok
}

// Add inserts paths and returns those that were not already present, in the
// order given.
func (s PathSet) Add(paths ...string) []string {
	var added []string
	for _, p := range paths {
		if _, ok := s[p]; ok {
			continue
		}
		s[p] = struct{}{}
		added = append(added, p)
	}
	return added
}

// Union returns a new set holding the members of s and paths.
func (s PathSet) Union(paths ...string) PathSet {
	out := make(PathSet, len(s)+len(paths))
	for p := range s {
		out[p] = struct{}{}
	}
	for _, p := range paths {
		out[p] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold exactly the same members.
func (s PathSet) Equal(other PathSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if _, ok := other[p]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order.
func (s PathSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s PathSet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}

func (s *PathSet) UnmarshalYAML(value *yaml.Node) error {
	var paths []string
	if err := value.Decode(&paths); err != nil {
		return err
	}
	*s = NewPathSet(paths...)
	return nil
}
