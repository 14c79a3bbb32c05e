package compiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/manifest"
	"github.com/arthur-debert/iconpack/pkg/rcc"
	"github.com/arthur-debert/iconpack/pkg/runner"
)

// Backend produces an unpatched artifact from a manifest
type Backend interface {
	Name() string
	Compile(ctx context.Context, manifestPath, artifactPath string) error
}

// Backend names accepted in configuration
const (
	BackendExternal = "external"
	BackendNative   = "native"
)

// DefaultCommand is the toolkit resource compiler
const DefaultCommand = "pyside6-rcc"

// ExternalBackend runs the toolkit compiler as
// "<command> [args...] <manifest> -o <artifact>"
type ExternalBackend struct {
	Command string
	Args    []string
	Timeout time.Duration
	runner  *runner.Runner
}

// NewExternalBackend creates a subprocess backend
func NewExternalBackend(command string, args []string, timeout time.Duration) *ExternalBackend {
	if command == "" {
		command = DefaultCommand
	}
	return &ExternalBackend{Command: command, Args: args, Timeout: timeout, runner: runner.New()}
}

// Name implements Backend
func (b *ExternalBackend) Name() string {
	return BackendExternal
}

// Compile implements Backend
func (b *ExternalBackend) Compile(ctx context.Context, manifestPath, artifactPath string) error {
	args := append(append([]string{}, b.Args...), manifestPath, "-o", artifactPath)
	_, err := b.runner.Run(ctx, runner.Command{
		Name:    b.Command,
		Args:    args,
		Timeout: b.Timeout,
	})
	return err
}

// NativeBackend encodes the bundle in process, producing the same module
// layout as the toolkit compiler
type NativeBackend struct {
	Options    rcc.Options
	ImportLine string
}

// NewNativeBackend creates an in-process backend
func NewNativeBackend(opts rcc.Options) *NativeBackend {
	return &NativeBackend{Options: opts, ImportLine: rcc.DefaultImportLine}
}

// Name implements Backend
func (b *NativeBackend) Name() string {
	return BackendNative
}

// Compile implements Backend. Entries resolve relative to the manifest's
// directory; a missing entry fails the compile, as with the toolkit tool.
func (b *NativeBackend) Compile(ctx context.Context, manifestPath, artifactPath string) error {
	entries, err := manifest.ReadFile(manifestPath)
	if err != nil {
		return err
	}

	base := filepath.Dir(manifestPath)
	files := make([]rcc.File, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := filepath.Join(base, filepath.FromSlash(e.File))
		info, err := os.Stat(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrSourceNotFound, "cannot find file %s", e.File).
				WithDetail("manifest", manifestPath)
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read file %s", e.File)
		}
		files = append(files, rcc.File{Path: e.ResourcePath(), Data: data, ModTime: info.ModTime()})
	}

	tables, err := rcc.Encode(files, b.Options)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := rcc.RenderPython(&buf, tables, b.ImportLine, "iconpack native resource compiler"); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render artifact")
	}
	if err := os.WriteFile(artifactPath, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write artifact").
			WithDetail("path", artifactPath)
	}
	return nil
}
