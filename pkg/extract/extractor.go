package extract

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/iconpack/pkg/bundle"
	"github.com/arthur-debert/iconpack/pkg/compiler"
	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/arthur-debert/iconpack/pkg/manifest"
	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options configure an Extractor
type Options struct {
	// PackageName is the package directory created in the output; minimal
	// bundles go to <output>/<PackageName>/resources
	PackageName string
	// Concurrency bounds how many axes are processed at once; values below
	// one mean one
	Concurrency int
}

// Extractor builds minimal bundles from loaded full bundles
type Extractor struct {
	bundles  *bundle.Registry
	compiler *compiler.Compiler
	opts     Options
	logger   zerolog.Logger
}

// New creates an extractor
func New(bundles *bundle.Registry, c *compiler.Compiler, opts Options) *Extractor {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Extractor{
		bundles:  bundles,
		compiler: c,
		opts:     opts,
		logger:   logging.GetLogger("extract"),
	}
}

// Extract writes the selected icons under outputDir and compiles one
// minimal bundle per axis touched by selectors.
//
// The returned error covers the whole call: invalid selectors, an
// unusable output directory or a held lock. Axis failures are reported in
// the summary only; use Summary.Err to aggregate them.
func (e *Extractor) Extract(ctx context.Context, selectors []types.IconSelector, outputDir string) (types.Summary, error) {
	summary := types.Summary{Command: "extract", Timestamp: time.Now()}

	if err := Validate(selectors); err != nil {
		return summary, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return summary, errors.Wrap(err, errors.ErrDirCreate, "failed to create output directory").
			WithDetail("path", outputDir)
	}

	lock, err := acquireLock(outputDir)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			e.logger.Warn().Err(err).Msg("Lock file left behind")
		}
	}()

	axes, groups := groupByAxis(selectors)
	e.logger.Info().
		Int("selectors", len(selectors)).
		Int("axes", len(axes)).
		Str("output", outputDir).
		Msg("Starting extraction")

	results := make([]types.AxisResult, len(axes))
	g := new(errgroup.Group)
	g.SetLimit(e.opts.Concurrency)
	for i, axis := range axes {
		g.Go(func() error {
			results[i] = e.extractAxis(ctx, axis, groups[axis], outputDir)
			return nil
		})
	}
	_ = g.Wait()

	summary.Results = results
	for _, r := range results {
		if r.Err != nil {
			e.logger.Error().Err(r.Err).Str("axis", r.Axis.String()).Msg("Axis extraction failed")
		}
	}
	e.logger.Info().
		Int("succeeded", len(summary.Succeeded())).
		Int("failed", len(summary.Failed())).
		Msg("Extraction finished")
	return summary, nil
}

// ArtifactPath returns where Extract puts the minimal bundle for axis
func (e *Extractor) ArtifactPath(outputDir string, axis types.IconAxis) string {
	return bundle.ArtifactPath(filepath.Join(outputDir, e.opts.PackageName), axis)
}

func (e *Extractor) extractAxis(ctx context.Context, axis types.IconAxis, selectors []types.IconSelector, outputDir string) (res types.AxisResult) {
	start := time.Now()
	res = types.AxisResult{Axis: axis}
	log := e.logger.With().Str("axis", axis.String()).Logger()
	defer func() {
		res.Duration = time.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	b, err := e.bundles.EnsureLoaded(axis)
	if err != nil {
		res.Err = err
		return res
	}

	for _, sel := range selectors {
		p := sel.LogicalPath()
		var (
			data []byte
			err  error
		)
		if b.Has(p) {
			data, err = b.ReadFile(p)
			if err == nil && len(data) == 0 {
				err = errors.Newf(errors.ErrSourceNotFound, "%s is empty in bundle", p).
					WithDetail("bundle", b.Source())
			}
		} else {
			err = errors.Newf(errors.ErrSourceNotFound, "%s not in bundle", p).
				WithDetail("bundle", b.Source())
		}
		if err != nil {
			log.Error().Err(err).Str("icon", sel.String()).Msg("Icon not available; skipped")
			res.Skipped = append(res.Skipped, sel)
			res.Missing++
			continue
		}

		if err := writeIcon(outputDir, p, data); err != nil {
			log.Error().Err(err).Str("icon", sel.String()).Msg("Failed to write icon; skipped")
			res.Skipped = append(res.Skipped, sel)
			continue
		}
		res.Written = append(res.Written, p)
	}

	if len(res.Written) == 0 {
		res.Err = errors.Newf(errors.ErrEmptyExtraction, "no requested icon resolved for axis %s", axis).
			WithDetail("requested", len(selectors))
		stale := e.ArtifactPath(outputDir, axis)
		if err := os.Remove(stale); err == nil {
			log.Info().Str("artifact", stale).Msg("Removed bundle left by an earlier extraction")
		} else if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("artifact", stale).Msg("Failed to remove earlier bundle")
		}
		return res
	}

	files := make([]string, len(res.Written))
	for i, p := range res.Written {
		files[i] = p.Relative()
	}
	qrc := filepath.Join(outputDir, manifest.FileName(axis))
	if err := manifest.WriteFile(qrc, files); err != nil {
		res.Err = err
		return res
	}
	defer func() {
		_ = os.Remove(qrc)
	}()

	artifact := e.ArtifactPath(outputDir, axis)
	if _, err := e.compiler.Compile(ctx, qrc, artifact); err != nil {
		res.Err = err
		return res
	}
	res.Artifact = artifact
	log.Info().Int("icons", len(res.Written)).Str("artifact", artifact).Msg("Minimal bundle written")
	return res
}

func writeIcon(outputDir string, p types.LogicalPath, data []byte) error {
	dst := filepath.Join(outputDir, filepath.FromSlash(p.Relative()))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create icon directory").
			WithDetail("path", filepath.Dir(dst))
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write icon").
			WithDetail("path", dst)
	}
	return nil
}
