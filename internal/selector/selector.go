// Package selector compiles path patterns and tests repository-relative
// paths against them.
//
// Matching uses shell-glob rules: "*" stays within one path segment, "**"
// crosses segments, "?" and character classes match a single character.
// There is no negation syntax; a leading "!" is an ordinary character, and
// braces are literal.
//
// git's sparse-checkout dialect is gitignore-style and does not always agree
// with these rules (for example an unanchored "foo" matches at any depth in
// git). Callers must not treat a Selector answer as a prediction of what git
// will materialize.
package selector

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
)

// globMeta lists the characters that turn a literal path into a pattern.
const globMeta = "*?[\\"

// PatternError reports a pattern rejected at construction time.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%q: %s", e.Pattern, e.Reason)
}

// Selector is an immutable set of compiled patterns.
type Selector struct {
	patterns []string
	globs    []string
}

// New validates and compiles patterns. An empty set is valid and matches
// nothing.
func New(patterns []string) (*Selector, error) {
	s := &Selector{
		patterns: make([]string, 0, len(patterns)),
		globs:    make([]string, 0, len(patterns)),
	}
	for _, p := range patterns {
		norm, glob, err := compile(p)
		if err != nil {
			return nil, err
		}
		s.patterns = append(s.patterns, norm)
		s.globs = append(s.globs, glob)
	}
	return s, nil
}

// ValidatePatterns reports the first pattern that New would reject.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, _, err := compile(p); err != nil {
			return err
		}
	}
	return nil
}

// compile returns the normalized pattern and the expression handed to
// doublestar.
func compile(p string) (string, string, error) {
	if strings.TrimSpace(p) == "" {
		return "", "", &PatternError{Pattern: p, Reason: "pattern is empty"}
	}
	// Patterns reach git one per line, so a line break would split one
	// recorded pattern into several.
	if strings.IndexFunc(p, unicode.IsControl) >= 0 {
		return "", "", &PatternError{Pattern: p, Reason: "pattern contains a control character"}
	}
	// Every candidate is already relative to the repository root, so a git
	// style root anchor carries no extra meaning here.
	norm := strings.TrimPrefix(filepath.ToSlash(p), "/")
	if norm == "" {
		return "", "", &PatternError{Pattern: p, Reason: "pattern names the repository root"}
	}
	glob := escapeBraces(norm)
	if !doublestar.ValidatePattern(glob) {
		return "", "", &PatternError{Pattern: p, Reason: "malformed glob expression"}
	}
	return norm, glob, nil
}

// escapeBraces turns off doublestar's {a,b} alternation. Characters already
// escaped with a backslash are copied unchanged.
func escapeBraces(p string) string {
	if !strings.ContainsAny(p, "{}") {
		return p
	}
	var b strings.Builder
	b.Grow(len(p) + 4)
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '\\' && i+1 < len(p):
			b.WriteByte(c)
			i++
			b.WriteByte(p[i])
		case c == '{' || c == '}':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Matches reports whether any pattern matches the whole relative path.
func (s *Selector) Matches(candidate string) bool {
	if s == nil {
		return false
	}
	path := strings.TrimPrefix(filepath.ToSlash(candidate), "./")
	for _, p := range s.globs {
		// Patterns were validated in New, so the error is always nil.
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// Patterns returns the normalized patterns in construction order.
func (s *Selector) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// IsLiteral reports whether p contains no glob metacharacters.
func IsLiteral(p string) bool {
	return !strings.ContainsAny(p, globMeta)
}

// Covered returns the literal paths among candidates that s already matches.
// Glob candidates are never reported: deciding whether one glob subsumes
// another is out of scope.
func (s *Selector) Covered(candidates []string) []string {
	var covered []string
	for _, c := range candidates {
		if IsLiteral(c) && s.Matches(c) {
			covered = append(covered, c)
		}
	}
	return covered
}
