// Package build compiles the full icon bundles, one per axis.
//
// Every requested axis is attempted. A failing axis is recorded in the
// summary and never stops the others.
package build

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/iconpack/pkg/bundle"
	"github.com/arthur-debert/iconpack/pkg/compiler"
	"github.com/arthur-debert/iconpack/pkg/fetch"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/arthur-debert/iconpack/pkg/manifest"
	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options configure a Builder
type Options struct {
	// SourceRoot holds the material-design-icons checkout; manifests are
	// written here so their entries resolve
	SourceRoot string
	// PackageRoot receives resources/icons_<axis>.py
	PackageRoot string
	// Concurrency bounds how many axes compile at once
	Concurrency int
	// Fetcher, when set, checks the corpus out if it is missing
	Fetcher *fetch.Fetcher
}

// Builder drives manifest building, compilation and patching per axis
type Builder struct {
	compiler *compiler.Compiler
	opts     Options
	logger   zerolog.Logger
}

// New creates a builder
func New(c *compiler.Compiler, opts Options) *Builder {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Builder{compiler: c, opts: opts, logger: logging.GetLogger("build")}
}

// CorpusRoot returns the directory holding one subdirectory per icon
func (b *Builder) CorpusRoot() string {
	return filepath.Join(b.opts.SourceRoot, filepath.FromSlash(types.CorpusRoot))
}

// BuildAll compiles the bundle for every axis and returns the aggregate.
// Results are in the order of axes.
func (b *Builder) BuildAll(ctx context.Context, axes []types.IconAxis) types.Summary {
	summary := types.Summary{Command: "build", Timestamp: time.Now()}

	if b.opts.Fetcher != nil {
		checkout := filepath.Join(b.opts.SourceRoot, types.CheckoutDir)
		if _, err := b.opts.Fetcher.Ensure(ctx, checkout); err != nil {
			// axes report the missing root themselves
			b.logger.Error().Err(err).Msg("Corpus fetch failed")
			summary.Warnings = append(summary.Warnings, err.Error())
		}
	}

	b.logger.Info().
		Int("axes", len(axes)).
		Str("backend", b.compiler.Backend().Name()).
		Str("corpus", b.CorpusRoot()).
		Str("package", b.opts.PackageRoot).
		Msg("Building bundles")

	results := make([]types.AxisResult, len(axes))
	g := new(errgroup.Group)
	g.SetLimit(b.opts.Concurrency)
	for i, axis := range axes {
		g.Go(func() error {
			results[i] = b.buildAxis(ctx, axis)
			return nil
		})
	}
	_ = g.Wait()

	summary.Results = results
	b.logger.Info().
		Int("succeeded", len(summary.Succeeded())).
		Int("failed", len(summary.Failed())).
		Msg("Build finished")
	return summary
}

func (b *Builder) buildAxis(ctx context.Context, axis types.IconAxis) (res types.AxisResult) {
	start := time.Now()
	res = types.AxisResult{Axis: axis}
	log := b.logger.With().Str("axis", axis.String()).Logger()
	defer func() {
		res.Duration = time.Since(start)
		if res.Err != nil {
			log.Error().Err(res.Err).Msg("Axis build failed")
		}
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	m, err := manifest.Build(b.CorpusRoot(), axis)
	if err != nil {
		res.Err = err
		return res
	}

	qrc := filepath.Join(b.opts.SourceRoot, manifest.FileName(axis))
	if err := manifest.WriteFile(qrc, m.Files()); err != nil {
		res.Err = err
		return res
	}
	defer func() {
		_ = os.Remove(qrc)
	}()

	artifact := bundle.ArtifactPath(b.opts.PackageRoot, axis)
	compiled, err := b.compiler.Compile(ctx, qrc, artifact)
	if err != nil {
		res.Err = err
		return res
	}

	missing := make(map[string]bool, len(compiled.Missing))
	for _, f := range compiled.Missing {
		missing[f] = true
	}
	for _, p := range m.Paths {
		if !missing[p.Relative()] {
			res.Written = append(res.Written, p)
		}
	}
	res.Missing = len(compiled.Missing)
	res.Artifact = artifact
	return res
}
