// Package fetch obtains the upstream icon corpus with a sparse git checkout.
package fetch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/arthur-debert/iconpack/pkg/runner"
	"github.com/rs/zerolog"
)

// Defaults for the upstream corpus
const (
	DefaultRepository = "https://github.com/google/material-design-icons"
	DefaultSparsePath = "symbols/web/"
	DefaultRef        = "master"
	DefaultTimeout    = 30 * time.Minute
)

// Options configure a Fetcher
type Options struct {
	Repository string
	SparsePath string
	Ref        string
	Timeout    time.Duration
	// Git is the git executable, "git" when empty
	Git string
}

// Fetcher checks out the corpus
type Fetcher struct {
	opts   Options
	runner *runner.Runner
	logger zerolog.Logger
}

// New creates a fetcher, filling unset options with defaults
func New(opts Options) *Fetcher {
	if opts.Repository == "" {
		opts.Repository = DefaultRepository
	}
	if opts.SparsePath == "" {
		opts.SparsePath = DefaultSparsePath
	}
	if opts.Ref == "" {
		opts.Ref = DefaultRef
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Git == "" {
		opts.Git = "git"
	}
	return &Fetcher{opts: opts, runner: runner.New(), logger: logging.GetLogger("fetch")}
}

// Ensure checks out the corpus into dir unless dir already exists. It
// reports whether a checkout happened. A failed checkout removes dir.
func (f *Fetcher) Ensure(ctx context.Context, dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		f.logger.Debug().Str("dir", dir).Msg("Corpus checkout present")
		return false, nil
	}

	f.logger.Info().Str("repository", f.opts.Repository).Str("dir", dir).Msg("Cloning icon corpus")
	if err := f.checkout(ctx, dir); err != nil {
		_ = os.RemoveAll(dir)
		return false, errors.Wrap(err, errors.ErrFetch, "failed to fetch icon corpus").
			WithDetail("repository", f.opts.Repository).
			WithDetail("dir", dir)
	}
	return true, nil
}

func (f *Fetcher) checkout(ctx context.Context, dir string) error {
	defer logging.LogOperationStart(f.logger, "sparse checkout")()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create checkout directory")
	}

	steps := [][]string{
		{"init", "--quiet"},
		{"remote", "add", "origin", f.opts.Repository},
		{"config", "core.sparseCheckout", "true"},
	}
	for _, args := range steps {
		if err := f.git(ctx, dir, args...); err != nil {
			return err
		}
	}

	sparse := filepath.Join(dir, ".git", "info", "sparse-checkout")
	if err := os.MkdirAll(filepath.Dir(sparse), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create git info directory")
	}
	if err := os.WriteFile(sparse, []byte(f.opts.SparsePath+"\n"), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write sparse-checkout patterns")
	}

	return f.git(ctx, dir, "pull", "--quiet", "--depth", "1", "origin", f.opts.Ref)
}

func (f *Fetcher) git(ctx context.Context, dir string, args ...string) error {
	_, err := f.runner.Run(ctx, runner.Command{
		Name:    f.opts.Git,
		Args:    args,
		Dir:     dir,
		Timeout: f.opts.Timeout,
	})
	return err
}
