package gitpartial

import (
	"github.com/bianoble/git-partial/internal/backend"
	"github.com/bianoble/git-partial/internal/engine"
	"github.com/bianoble/git-partial/internal/metadata"
	"github.com/bianoble/git-partial/internal/report"
)

// Type aliases re-export internal types as the public API.
// Users import "github.com/bianoble/git-partial/pkg/gitpartial" and use
// gitpartial.Record, gitpartial.Status, etc.

type Backend = backend.Backend
type CommandError = backend.CommandError
type Record = metadata.Record
type PathSet = metadata.PathSet
type ExtendResult = engine.ExtendResult
type RefreshResult = engine.RefreshResult
type MatchResult = engine.MatchResult
type PreconditionError = engine.PreconditionError
type Status = report.Status
type Divergence = report.Divergence

const (
	UpToDate = report.UpToDate
	Behind   = report.Behind
	Diverged = report.Diverged
	Unknown  = report.Unknown
)

// Errors callers can test for with errors.Is.
var (
	ErrDestinationNotEmpty = engine.ErrDestinationNotEmpty
	ErrNoPaths             = engine.ErrNoPaths
	ErrInvalidPattern      = engine.ErrInvalidPattern
	ErrNotPartialCheckout  = engine.ErrNotPartialCheckout
	ErrDetachedHead        = engine.ErrDetachedHead
	ErrNonFastForward      = backend.ErrNonFastForward
	ErrNotFound            = metadata.ErrNotFound
	ErrCorrupt             = metadata.ErrCorrupt
)

// IsPrecondition reports whether err is a refusal to start: nothing was
// changed on disk.
func IsPrecondition(err error) bool {
	return engine.IsPrecondition(err)
}

// IsNonFastForward reports whether err means local and remote history have
// diverged.
func IsNonFastForward(err error) bool {
	return backend.IsNonFastForward(err)
}
