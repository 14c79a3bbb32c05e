package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var outlined20 = types.IconAxis{Style: types.StyleOutlined, Size: types.Size20}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"search", "home", "menu"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0755))
	}
	// only one real file exists; the builder must not care
	svg := filepath.Join(root, "home", "materialsymbolsoutlined", "home_20px.svg")
	require.NoError(t, os.MkdirAll(filepath.Dir(svg), 0755))
	require.NoError(t, os.WriteFile(svg, []byte("<svg/>"), 0644))
	// stray files at the root are not icons
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0644))

	m, err := Build(root, outlined20)
	require.NoError(t, err)

	require.Len(t, m.Paths, 6)
	assert.Equal(t, []types.LogicalPath{
		":/material-design-icons/symbols/web/home/materialsymbolsoutlined/home_20px.svg",
		":/material-design-icons/symbols/web/home/materialsymbolsoutlined/home_fill1_20px.svg",
		":/material-design-icons/symbols/web/menu/materialsymbolsoutlined/menu_20px.svg",
		":/material-design-icons/symbols/web/menu/materialsymbolsoutlined/menu_fill1_20px.svg",
		":/material-design-icons/symbols/web/search/materialsymbolsoutlined/search_20px.svg",
		":/material-design-icons/symbols/web/search/materialsymbolsoutlined/search_fill1_20px.svg",
	}, m.Paths)

	assert.Equal(t, "material-design-icons/symbols/web/home/materialsymbolsoutlined/home_20px.svg", m.Files()[0])
}

func TestBuildCountsTwicePerIcon(t *testing.T) {
	for _, n := range []int{0, 1, 17} {
		root := t.TempDir()
		for i := 0; i < n; i++ {
			require.NoError(t, os.Mkdir(filepath.Join(root, "icon"+string(rune('a'+i))), 0755))
		}

		for _, axis := range types.AllAxes() {
			m, err := Build(root, axis)
			require.NoError(t, err)
			assert.Len(t, m.Paths, 2*n, axis.String())
		}
	}
}

func TestBuildMissingRoot(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope"), outlined20)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound), "got %v", err)
}

func TestBuildInvalidAxis(t *testing.T) {
	_, err := Build(t.TempDir(), types.IconAxis{Style: types.StyleSharp, Size: 33})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "material_design_icons_sharp_48.qrc",
		FileName(types.IconAxis{Style: types.StyleSharp, Size: types.Size48}))
}

func TestWrite(t *testing.T) {
	t.Run("normalizes separators", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, []string{`a\b\c.svg`, "d/e.svg"}))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE RCC>\n<RCC version=\"1.0\">\n<qresource>\n"), out)
		assert.Contains(t, out, "\n<file>a/b/c.svg</file>\n")
		assert.Contains(t, out, "\n<file>d/e.svg</file>\n")
		assert.NotContains(t, out, `\`)
		assert.Contains(t, out, "</qresource>\n</RCC>")
	})

	t.Run("is idempotent", func(t *testing.T) {
		files := []string{"x/one.svg", `y\two.svg`, "z/three.svg"}
		var first, second bytes.Buffer
		require.NoError(t, Write(&first, files))
		require.NoError(t, Write(&second, files))
		assert.Equal(t, first.Bytes(), second.Bytes())
	})

	t.Run("keeps order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, []string{"b.svg", "a.svg"}))
		assert.Less(t, strings.Index(buf.String(), "b.svg"), strings.Index(buf.String(), "a.svg"))
	})
}

func TestWriteFileReadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName(outlined20))
	files := []string{
		"material-design-icons/symbols/web/home/materialsymbolsoutlined/home_20px.svg",
		"material-design-icons/symbols/web/home/materialsymbolsoutlined/home_fill1_20px.svg",
	}

	require.NoError(t, WriteFile(path, files))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, files[0], entries[0].File)
	assert.Equal(t, "/"+files[0], entries[0].ResourcePath())
}

func TestReadPrefixAndAlias(t *testing.T) {
	src := `<!DOCTYPE RCC>
<RCC version="1.0">
<qresource prefix="/icons">
<file alias="home.svg">material-design-icons/home_20px.svg</file>
<file>  </file>
</qresource>
</RCC>
`
	entries, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/icons/home.svg", entries[0].ResourcePath())
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("<html/>"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.qrc"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "full.qrc")
	dst := filepath.Join(dir, "pruned.qrc")
	require.NoError(t, WriteFile(src, []string{"a.svg", "b.svg", "c.svg"}))

	kept, dropped, err := Prune(src, dst, func(e Entry) bool { return e.File != "b.svg" })
	require.NoError(t, err)

	assert.Len(t, kept, 2)
	require.Len(t, dropped, 1)
	assert.Equal(t, "b.svg", dropped[0].File)

	entries, err := ReadFile(dst)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.svg", entries[0].File)
	assert.Equal(t, "c.svg", entries[1].File)

	// the source manifest is not modified
	orig, err := ReadFile(src)
	require.NoError(t, err)
	assert.Len(t, orig, 3)
}
