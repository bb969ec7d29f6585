// Package gitpartial provides the public Go library API for git-partial.
//
// git-partial manages partial checkouts of large git repositories: a clone
// that materializes only selected paths, remembers that selection, and can
// later widen it, fast-forward it and report how it relates to the remote.
//
// # Basic Usage
//
//	client := gitpartial.New(gitpartial.Options{})
//
//	// Clone with two paths selected
//	rec, err := client.Clone(ctx, "https://example.com/mono.git", "./mono",
//	    []string{"README.md", "services/api/**"})
//
//	// Widen the selection
//	res, err := client.AddPaths(ctx, "./mono", []string{"docs/**"})
//
//	// Fast-forward to the remote branch
//	pull, err := client.SmartPull(ctx, "./mono")
//
//	// Print the status report
//	text, err := client.StatusText(ctx, "./mono")
package gitpartial

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/bianoble/git-partial/internal/backend"
	"github.com/bianoble/git-partial/internal/engine"
	"github.com/bianoble/git-partial/internal/logging"
	"github.com/bianoble/git-partial/internal/report"
)

// Cloner creates new partial checkouts.
type Cloner interface {
	Clone(ctx context.Context, url, dest string, paths []string) (*Record, error)
}

// PathAdder widens the selection of an existing checkout.
type PathAdder interface {
	AddPaths(ctx context.Context, root string, paths []string) (*ExtendResult, error)
}

// Puller fast-forwards an existing checkout.
type Puller interface {
	SmartPull(ctx context.Context, root string) (*RefreshResult, error)
}

// StatusReporter inspects an existing checkout.
type StatusReporter interface {
	Status(ctx context.Context, root string) (*Status, error)
	StatusText(ctx context.Context, root string) (string, error)
}

// Options configures a git-partial client.
type Options struct {
	// GitPath is the git binary. Default: "git".
	GitPath string

	// Remote is the remote name used for clones and comparisons.
	// Default: "origin".
	Remote string

	// Filter is the partial clone filter. Default: "blob:none".
	Filter string

	// Abbrev is the abbreviated commit length in status output. Default: 7.
	Abbrev int

	// Backend replaces the git command-line backend. GitPath and Filter
	// are ignored when it is set.
	Backend Backend

	// Logger receives progress logs when the context carries none.
	Logger *log.Entry
}

// Client is the main entry point for the git-partial library.
// It implements Cloner, PathAdder, Puller and StatusReporter.
type Client struct {
	engine *engine.Engine
	logger *log.Entry
}

var (
	_ Cloner         = (*Client)(nil)
	_ PathAdder      = (*Client)(nil)
	_ Puller         = (*Client)(nil)
	_ StatusReporter = (*Client)(nil)
)

// New creates a new git-partial Client.
func New(opts Options) *Client {
	b, remote := opts.Backend, opts.Remote
	if b == nil {
		sb := backend.NewShellBackend(backend.ShellOptions{
			GitPath: opts.GitPath,
			Remote:  opts.Remote,
			Filter:  opts.Filter,
		})
		b, remote = sb, sb.Remote()
	}
	return &Client{
		engine: &engine.Engine{
			Backend: b,
			Remote:  remote,
			Abbrev:  opts.Abbrev,
		},
		logger: opts.Logger,
	}
}

func (c *Client) context(ctx context.Context) context.Context {
	if c.logger == nil || logging.HasLogger(ctx) {
		return ctx
	}
	return logging.ContextWithLogger(ctx, c.logger)
}

// Clone creates a partial checkout of url in dest with paths selected.
func (c *Client) Clone(ctx context.Context, url, dest string, paths []string) (*Record, error) {
	return c.engine.Initialize(c.context(ctx), url, dest, paths)
}

// AddPaths adds paths to the selection of the checkout at root.
func (c *Client) AddPaths(ctx context.Context, root string, paths []string) (*ExtendResult, error) {
	return c.engine.ExtendSelection(c.context(ctx), root, paths)
}

// SmartPull fetches and fast-forwards the checkout at root.
func (c *Client) SmartPull(ctx context.Context, root string) (*RefreshResult, error) {
	return c.engine.Refresh(c.context(ctx), root)
}

// Status inspects the checkout at root.
func (c *Client) Status(ctx context.Context, root string) (*Status, error) {
	return c.engine.ReportStatus(c.context(ctx), root)
}

// StatusText inspects the checkout at root and renders the report.
func (c *Client) StatusText(ctx context.Context, root string) (string, error) {
	st, err := c.Status(ctx, root)
	if err != nil {
		return "", err
	}
	return report.Render(st)
}

// Match reports which of paths the recorded selection at root covers.
func (c *Client) Match(ctx context.Context, root string, paths []string) ([]MatchResult, error) {
	return c.engine.Match(c.context(ctx), root, paths)
}
