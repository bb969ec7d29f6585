package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bianoble/git-partial/internal/logging"
	"github.com/bianoble/git-partial/internal/metadata"
)

// Initialize clones remoteURL into dest, restricts the working tree to paths
// and writes the first checkout record.
//
// dest must not exist or be an empty directory. A clone that fails half way
// is left in place.
func (e *Engine) Initialize(ctx context.Context, remoteURL, dest string, paths []string) (*metadata.Record, error) {
	const op = "clone"
	logger := logging.LoggerFromContext(ctx).WithFields(log.Fields{
		"remote": remoteURL,
		"root":   dest,
	})

	if strings.TrimSpace(remoteURL) == "" {
		return nil, &PreconditionError{Op: op, Err: ErrNoRemoteURL}
	}
	if err := validatePaths(op, dest, paths); err != nil {
		return nil, err
	}
	if err := checkDestination(op, dest); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("creating destination %s: %w", dest, err)
	}

	logger.Info("cloning with history filtering")
	if err := e.Backend.CloneWithFiltering(ctx, remoteURL, dest); err != nil {
		return nil, fmt.Errorf("cloning repository: %w", err)
	}

	selected := metadata.NewPathSet(paths...)
	logger.WithField("paths", selected.Sorted()).Debug("setting sparse checkout paths")
	if err := e.Backend.SetSelection(ctx, dest, selected.Sorted()); err != nil {
		return nil, fmt.Errorf("setting sparse checkout paths: %w", err)
	}

	commit, err := e.Backend.CurrentCommit(ctx, dest)
	if err != nil {
		return nil, fmt.Errorf("reading current commit: %w", err)
	}

	rec := metadata.New(remoteURL)
	rec.SelectedPaths = selected
	if err := rec.SetLastCommit(commit); err != nil {
		return nil, fmt.Errorf("recording current commit: %w", err)
	}
	if err := metadata.Save(dest, rec); err != nil {
		return nil, err
	}

	logger.WithField("commit", commit).Info("partial clone complete")
	return rec, nil
}

func checkDestination(op, dest string) error {
	info, err := os.Stat(dest)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking destination %s: %w", dest, err)
	}
	if !info.IsDir() {
		return &PreconditionError{Op: op, Path: dest, Err: ErrDestinationNotDir}
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		return fmt.Errorf("reading destination %s: %w", dest, err)
	}
	if len(entries) > 0 {
		return &PreconditionError{Op: op, Path: dest, Err: ErrDestinationNotEmpty}
	}
	return nil
}
