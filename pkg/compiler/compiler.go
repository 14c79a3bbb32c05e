package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/arthur-debert/iconpack/pkg/manifest"
	"github.com/arthur-debert/iconpack/pkg/patch"
	"github.com/rs/zerolog"
)

// Result describes one successful compile
type Result struct {
	Artifact string
	Included int
	// Missing lists manifest entries whose source file did not exist
	Missing  []string
	Duration time.Duration
}

// Compiler runs a backend and patches what it produces
type Compiler struct {
	backend Backend
	patcher *patch.Patcher
	logger  zerolog.Logger
}

// New creates a compiler
func New(backend Backend, patcher *patch.Patcher) *Compiler {
	return &Compiler{
		backend: backend,
		patcher: patcher,
		logger:  logging.GetLogger("compiler"),
	}
}

// Backend returns the backend in use
func (c *Compiler) Backend() Backend {
	return c.backend
}

// Compile builds the artifact for manifestPath at artifactPath.
//
// Entries whose source file is missing are dropped with a warning before
// the backend runs. A backend failure returns ErrCompileFailure and leaves
// no patched artifact; a patch mismatch returns ErrPatchMismatch and leaves
// the artifact unpatched.
func (c *Compiler) Compile(ctx context.Context, manifestPath, artifactPath string) (Result, error) {
	start := time.Now()
	res := Result{Artifact: artifactPath}
	log := c.logger.With().
		Str("manifest", manifestPath).
		Str("artifact", artifactPath).
		Str("backend", c.backend.Name()).
		Str("adapter", c.patcher.Adapter().Version()).
		Logger()

	input, cleanup, included, missing, err := c.prune(manifestPath)
	if err != nil {
		return res, err
	}
	defer cleanup()
	res.Included = included
	res.Missing = missing

	for _, m := range missing {
		log.Warn().Str("file", m).Msg("Source file missing; dropped from manifest")
	}
	if included == 0 {
		return res, errors.New(errors.ErrSourceNotFound, "manifest references no existing source files").
			WithDetail("manifest", manifestPath)
	}

	if err := os.MkdirAll(filepath.Dir(artifactPath), 0755); err != nil {
		return res, errors.Wrap(err, errors.ErrDirCreate, "failed to create artifact directory").
			WithDetail("path", filepath.Dir(artifactPath))
	}

	log.Info().Int("files", included).Msg("Compiling resources")
	if err := c.backend.Compile(ctx, input, artifactPath); err != nil {
		log.Error().Err(err).Msg("Resource compiler failed")
		_ = os.Remove(artifactPath)
		return res, errors.Wrap(err, errors.ErrCompileFailure, "resource compilation failed").
			WithDetail("manifest", manifestPath).
			WithDetail("backend", c.backend.Name())
	}

	if err := c.patcher.PatchFile(artifactPath); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	log.Info().Dur("duration", res.Duration).Msg("Artifact ready")
	return res, nil
}

// prune returns the manifest path to hand to the backend. When every entry
// exists that is the original; otherwise a sibling copy without the missing
// entries is written and removed by cleanup.
func (c *Compiler) prune(manifestPath string) (string, func(), int, []string, error) {
	noop := func() {}
	entries, err := manifest.ReadFile(manifestPath)
	if err != nil {
		return "", noop, 0, nil, err
	}

	base := filepath.Dir(manifestPath)
	exists := func(e manifest.Entry) bool {
		_, err := os.Stat(filepath.Join(base, filepath.FromSlash(e.File)))
		return err == nil
	}

	var missing []string
	for _, e := range entries {
		if !exists(e) {
			missing = append(missing, e.File)
		}
	}
	if len(missing) == 0 {
		return manifestPath, noop, len(entries), nil, nil
	}

	pruned := filepath.Join(base, strings.TrimSuffix(filepath.Base(manifestPath), ".qrc")+".pruned.qrc")
	kept, _, err := manifest.Prune(manifestPath, pruned, exists)
	if err != nil {
		return "", noop, 0, nil, err
	}
	cleanup := func() {
		_ = os.Remove(pruned)
	}
	return pruned, cleanup, len(kept), missing, nil
}
