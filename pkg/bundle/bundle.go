package bundle

import (
	"os"
	"strings"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/rcc"
	"github.com/arthur-debert/iconpack/pkg/types"
)

// Bundle is a loaded, read-only mapping from logical path to content
type Bundle struct {
	path  string
	files map[types.LogicalPath][]byte
}

// Load parses the compiled artifact at path
func Load(path string) (*Bundle, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrBundleLoad, "compiled bundle does not exist").
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrBundleLoad, "cannot read compiled bundle").
			WithDetail("path", path)
	}

	tables, err := rcc.ParsePython(src)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrBundleLoad, "not a compiled bundle").
			WithDetail("path", path)
	}
	raw, err := rcc.Decode(tables)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrBundleLoad, "corrupt compiled bundle").
			WithDetail("path", path)
	}

	b := &Bundle{path: path, files: make(map[types.LogicalPath][]byte, len(raw))}
	for p, data := range raw {
		b.files[types.LogicalPathFromRelative(strings.TrimPrefix(p, "/"))] = data
	}
	return b, nil
}

// Source returns the artifact path the bundle was loaded from
func (b *Bundle) Source() string {
	return b.path
}

// ReadFile returns the content registered at p. The returned slice must
// not be modified.
func (b *Bundle) ReadFile(p types.LogicalPath) ([]byte, error) {
	data, ok := b.files[p]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "%s not found in bundle", p).
			WithDetail("bundle", b.path)
	}
	return data, nil
}

// Has reports whether p is registered
func (b *Bundle) Has(p types.LogicalPath) bool {
	_, ok := b.files[p]
	return ok
}

// Len returns the number of registered paths
func (b *Bundle) Len() int {
	return len(b.files)
}
