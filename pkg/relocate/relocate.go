// Package relocate copies the icon package's facade sources next to an
// extracted bundle so the output is importable on its own.
package relocate

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/iconpack/pkg/bundle"
	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultFacadeFiles are the package sources the relocated package needs
var DefaultFacadeFiles = []string{"__init__.py", "_icon.py"}

// Options configure a Relocator
type Options struct {
	// SourceRoot is the installed package directory to copy from
	SourceRoot string
	// PackageName is the directory created in the output
	PackageName string
	// Files are names relative to SourceRoot; DefaultFacadeFiles when empty
	Files []string
}

// Result lists what was copied and what was not found
type Result struct {
	Target   string
	Copied   []string
	Warnings []error
}

// Relocator copies facade files
type Relocator struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a relocator
func New(opts Options) *Relocator {
	if len(opts.Files) == 0 {
		opts.Files = DefaultFacadeFiles
	}
	return &Relocator{opts: opts, logger: logging.GetLogger("relocate")}
}

// Target returns the package directory Relocate writes into
func (r *Relocator) Target(outputDir string) string {
	return filepath.Join(outputDir, r.opts.PackageName)
}

// Relocate copies every facade file into <outputDir>/<package>, keeping
// names and modes. A file missing from the source root is a warning
// (ErrRelocationMiss in Result.Warnings). It also ensures the resources
// directory is a Python package.
//
// A target that resolves to SourceRoot is rejected with ErrInvalidInput.
func (r *Relocator) Relocate(outputDir string) (Result, error) {
	target := r.Target(outputDir)
	res := Result{Target: target}

	if sameFile(r.opts.SourceRoot, target) {
		return res, errors.Newf(errors.ErrInvalidInput,
			"output package directory %s is the installed package", target).
			WithDetail("source", r.opts.SourceRoot).
			WithDetail("target", target)
	}

	resources := filepath.Join(target, bundle.ResourcesDir)
	if err := os.MkdirAll(resources, 0755); err != nil {
		return res, errors.Wrap(err, errors.ErrDirCreate, "failed to create package directory").
			WithDetail("path", resources)
	}

	for _, name := range r.opts.Files {
		src := filepath.Join(r.opts.SourceRoot, name)
		dst := filepath.Join(target, name)

		info, err := os.Stat(src)
		if err != nil || info.IsDir() {
			warn := errors.Newf(errors.ErrRelocationMiss, "facade file %s not found", name).
				WithDetail("path", src)
			r.logger.Warn().Str("file", name).Str("source", src).Msg("Facade file not found, skipping")
			res.Warnings = append(res.Warnings, warn)
			continue
		}

		if sameFile(src, dst) {
			r.logger.Debug().Str("file", name).Str("dest", dst).Msg("Facade file already in place")
			continue
		}
		if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
			return res, err
		}
		res.Copied = append(res.Copied, name)
		r.logger.Info().Str("file", name).Str("dest", dst).Msg("Relocated facade file")
	}

	initFile := filepath.Join(resources, "__init__.py")
	if _, err := os.Stat(initFile); os.IsNotExist(err) {
		if err := os.WriteFile(initFile, nil, 0644); err != nil {
			return res, errors.Wrap(err, errors.ErrFileWrite, "failed to write resources package marker").
				WithDetail("path", initFile)
		}
	}

	return res, nil
}

// sameFile reports whether both paths exist and name the same file
func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func copyFile(src, dst string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create destination directory").
			WithDetail("path", filepath.Dir(dst))
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to open facade file").
			WithDetail("path", src)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to create facade copy").
			WithDetail("path", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrap(err, errors.ErrFileWrite, "failed to copy facade file").
			WithDetail("path", dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to copy facade file").
			WithDetail("path", dst)
	}
	return os.Chmod(dst, perm)
}
