package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Walker recursively enumerates regular files under a root directory.
//
// Entries are typed by their lstat result: a symbolic link is a symlink,
// never the file or directory it points at, so symlinked directories are
// not descended into. That skip doubles as cycle protection for symlinked
// directory loops and is intentional.
type Walker struct {
	logger zerolog.Logger
}

// NewWalker creates a walker.
func NewWalker(logger zerolog.Logger) *Walker {
	return &Walker{
		logger: logger.With().Str("component", "walker").Logger(),
	}
}

// Walk traverses root depth-first and calls fn for every regular file.
// An unreadable root is a fatal precondition; an unreadable nested
// directory is logged and skipped while siblings continue. fn errors and
// context cancellation abort the walk.
func (w *Walker) Walk(ctx context.Context, root string, fn func(path string) error) error {
	if _, err := os.ReadDir(root); err != nil {
		return fmt.Errorf("cannot open directory %s: %w", root, err)
	}
	return w.walkDir(ctx, root, fn)
}

func (w *Walker) walkDir(ctx context.Context, dir string, fn func(path string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Permission or race on a nested directory: skip the subtree.
		w.logger.Warn().Err(err).Str("dir", dir).Msg("Skipping unreadable directory")
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// DirEntry.Type comes from lstat and never follows links, so a
		// symlinked directory falls through both branches untouched.
		switch {
		case entry.Type().IsDir():
			if err := w.walkDir(ctx, path, fn); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := fn(path); err != nil {
				return err
			}
		}
	}

	return nil
}
