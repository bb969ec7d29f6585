// Package report formats the outcome of a status inspection. It holds no
// decision logic: the classification arrives precomputed.
package report

import (
	"bytes"
	"fmt"
	"text/template"
)

// DefaultAbbrev is the number of characters shown for abbreviated commits.
const DefaultAbbrev = 7

// UnknownCommit is displayed when no commit has been recorded.
const UnknownCommit = "<unknown>"

// Divergence classifies the local commit against the remote counterpart.
type Divergence int

const (
	UpToDate Divergence = iota
	Behind
	Diverged
	Unknown
)

func (d Divergence) String() string {
	switch d {
	case UpToDate:
		return "up-to-date"
	case Behind:
		return "behind"
	case Diverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// Kind tells which of the three report shapes applies.
type Kind int

const (
	// Full is a managed checkout with selection mode active.
	Full Kind = iota
	// NotManaged means no record exists at the root.
	NotManaged
	// SelectionInactive means a record exists but git is not in
	// sparse-checkout mode.
	SelectionInactive
)

// Status is everything the report shows.
type Status struct {
	Kind          Kind
	Root          string
	Branch        string
	Divergence    Divergence
	LocalCommit   string
	RemoteCommit  string
	RemoteURL     string
	SelectedPaths []string
	Changes       []string
	// Abbrev is the abbreviated commit length; zero means DefaultAbbrev.
	Abbrev int
}

// Abbrev shortens a commit id to n characters.
func Abbrev(id string, n int) string {
	if n <= 0 {
		n = DefaultAbbrev
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// Classification renders the divergence with abbreviated commit ids.
func (s *Status) Classification() string {
	local := UnknownCommit
	if s.LocalCommit != "" {
		local = Abbrev(s.LocalCommit, s.Abbrev)
	}
	remote := Abbrev(s.RemoteCommit, s.Abbrev)
	switch s.Divergence {
	case UpToDate:
		return "Up-to-date"
	case Behind:
		return fmt.Sprintf("Behind remote (%s -> %s)", local, remote)
	case Diverged:
		return fmt.Sprintf("Diverged from remote (local: %s, remote: %s)", local, remote)
	default:
		return fmt.Sprintf("Could not determine remote status for branch '%s'", s.Branch)
	}
}

// LocalDisplay is the full local commit or UnknownCommit.
func (s *Status) LocalDisplay() string {
	return s.localOrUnknown()
}

func (s *Status) localOrUnknown() string {
	if s.LocalCommit == "" {
		return UnknownCommit
	}
	return s.LocalCommit
}

var fullTemplate = template.Must(template.New("status").Parse(`Git Partial Status
==================

Branch: {{.Branch}} ({{.Classification}})
Last Synced Commit: {{.LocalDisplay}}
Remote URL: {{.RemoteURL}}

Sparse checkout paths:
{{range .SelectedPaths}}  - {{.}}
{{end}}
Local changes:
{{if .Changes}}{{range .Changes}}  {{.}}
{{end}}{{else}}  No changes
{{end}}`))

// Render returns the textual report for s.
func Render(s *Status) (string, error) {
	switch s.Kind {
	case NotManaged:
		return fmt.Sprintf("%s is not a git-partial checkout (metadata not found).\n", s.Root), nil
	case SelectionInactive:
		return "Warning: Repository metadata found, but sparse checkout is not enabled.\n", nil
	}

	var buf bytes.Buffer
	if err := fullTemplate.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("rendering status: %w", err)
	}
	return buf.String(), nil
}
