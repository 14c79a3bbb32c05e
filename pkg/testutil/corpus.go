package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/stretchr/testify/require"
)

// Corpus is an icon source tree laid out like symbols/web
type Corpus struct {
	// Root is the directory holding one subdirectory per icon name
	Root string
}

// SetupCorpus creates an empty corpus in a temp directory
func SetupCorpus(t *testing.T) *Corpus {
	t.Helper()

	root := filepath.Join(t.TempDir(), filepath.FromSlash(types.CorpusRoot))
	require.NoError(t, os.MkdirAll(root, 0755))
	return &Corpus{Root: root}
}

// Base returns the directory logical paths are relative to
func (c *Corpus) Base() string {
	return filepath.Clean(filepath.Join(c.Root, "..", "..", ".."))
}

// Path returns where sel lives on disk
func (c *Corpus) Path(sel types.IconSelector) string {
	return filepath.Join(c.Base(), filepath.FromSlash(sel.LogicalPath().Relative()))
}

// AddIcon writes one icon variant and returns its path
func (c *Corpus) AddIcon(t *testing.T, sel types.IconSelector, content string) string {
	t.Helper()

	p := c.Path(sel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// AddName creates an icon directory with no variants in it
func (c *Corpus) AddName(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(c.Root, name), 0755))
}

// AddAllVariants writes both fills of name for every axis and returns the
// content written per logical path
func (c *Corpus) AddAllVariants(t *testing.T, name string, axes ...types.IconAxis) map[types.LogicalPath]string {
	t.Helper()

	written := make(map[types.LogicalPath]string)
	for _, axis := range axes {
		for _, fill := range []bool{false, true} {
			sel := types.IconSelector{Name: name, Style: axis.Style, Fill: fill, Size: axis.Size}
			content := SVG(sel)
			c.AddIcon(t, sel, content)
			written[sel.LogicalPath()] = content
		}
	}
	return written
}

// SVG returns distinct placeholder markup for a selector
func SVG(sel types.IconSelector) string {
	return `<svg xmlns="http://www.w3.org/2000/svg"><title>` + sel.String() + `</title></svg>`
}
