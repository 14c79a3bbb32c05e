package patch

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/rs/zerolog"
)

// Patcher applies an adapter to artifact files on disk
type Patcher struct {
	adapter Adapter
	logger  zerolog.Logger
}

// New returns a patcher for the adapter registered under version
func New(version string) (*Patcher, error) {
	a, err := Lookup(version)
	if err != nil {
		return nil, err
	}
	return NewWithAdapter(a), nil
}

// NewWithAdapter returns a patcher using a
func NewWithAdapter(a Adapter) *Patcher {
	return &Patcher{adapter: a, logger: logging.GetLogger("patch")}
}

// Adapter returns the adapter in use
func (p *Patcher) Adapter() Adapter {
	return p.adapter
}

// PatchFile rewrites the artifact at path in place. On a mismatch the error
// is logged and the file is left untouched.
func (p *Patcher) PatchFile(path string) error {
	p.logger.Info().Str("path", path).Str("adapter", p.adapter.Version()).Msg("Patching binding imports")

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrNotFound, "artifact to patch does not exist").
			WithDetail("path", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to read artifact").
			WithDetail("path", path)
	}

	patched, err := p.adapter.Patch(content)
	if err != nil {
		p.logger.Error().Err(err).Str("path", path).Msg("Artifact import line did not match; left unpatched")
		if e, ok := err.(*errors.IconpackError); ok {
			e.WithDetail("path", path)
		}
		return err
	}

	if err := writeAtomic(path, patched, info.Mode().Perm()); err != nil {
		return err
	}
	p.logger.Debug().Str("path", path).Msg("Artifact patched")
	return nil
}

// writeAtomic replaces path via a sibling temp file and rename
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to create temp file").
			WithDetail("path", path)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write patched artifact").
			WithDetail("path", path)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, errors.ErrFileWrite, "failed to set artifact mode").
			WithDetail("path", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write patched artifact").
			WithDetail("path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to replace artifact").
			WithDetail("path", path)
	}
	return nil
}
