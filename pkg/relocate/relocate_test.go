package relocate

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelocate(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "__init__.py"), []byte("from ._icon import *\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "_icon.py"), []byte("class Icon: pass\n"), 0600))

	r := New(Options{SourceRoot: src, PackageName: "material_icons"})
	res, err := r.Relocate(out)
	require.NoError(t, err)

	target := filepath.Join(out, "material_icons")
	assert.Equal(t, target, res.Target)
	assert.Equal(t, []string{"__init__.py", "_icon.py"}, res.Copied)
	assert.Empty(t, res.Warnings)

	got, err := os.ReadFile(filepath.Join(target, "_icon.py"))
	require.NoError(t, err)
	assert.Equal(t, "class Icon: pass\n", string(got))
	assert.FileExists(t, filepath.Join(target, "resources", "__init__.py"))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(target, "_icon.py"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestRelocateMissingFileIsWarning(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "__init__.py"), []byte(""), 0644))

	res, err := New(Options{SourceRoot: src, PackageName: "pkg"}).Relocate(out)
	require.NoError(t, err)

	assert.Equal(t, []string{"__init__.py"}, res.Copied)
	require.Len(t, res.Warnings, 1)
	assert.True(t, errors.IsErrorCode(res.Warnings[0], errors.ErrRelocationMiss))
	assert.NoFileExists(t, filepath.Join(out, "pkg", "_icon.py"))
}

func TestRelocateKeepsExistingResourcesInit(t *testing.T) {
	out := t.TempDir()
	initFile := filepath.Join(out, "pkg", "resources", "__init__.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(initFile), 0755))
	require.NoError(t, os.WriteFile(initFile, []byte("# keep\n"), 0644))

	res, err := New(Options{SourceRoot: t.TempDir(), PackageName: "pkg", Files: []string{"x.py"}}).Relocate(out)
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 1)

	got, err := os.ReadFile(initFile)
	require.NoError(t, err)
	assert.Equal(t, "# keep\n", string(got))
}

func TestRelocateOntoSourceRootIsRejected(t *testing.T) {
	out := t.TempDir()
	src := filepath.Join(out, "qt_material_icons")
	require.NoError(t, os.MkdirAll(src, 0755))
	iconFile := filepath.Join(src, "_icon.py")
	require.NoError(t, os.WriteFile(iconFile, []byte("class Icon:\n    pass\n"), 0644))

	_, err := New(Options{SourceRoot: src, PackageName: "qt_material_icons"}).Relocate(out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	got, err := os.ReadFile(iconFile)
	require.NoError(t, err)
	assert.Equal(t, "class Icon:\n    pass\n", string(got))
	assert.NoDirExists(t, filepath.Join(src, "resources"))
}

func TestRelocateSkipsFileAlreadyInPlace(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hard links")
	}
	src := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "_icon.py"), []byte("class Icon: pass\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(out, "pkg"), 0755))
	require.NoError(t, os.Link(filepath.Join(src, "_icon.py"), filepath.Join(out, "pkg", "_icon.py")))

	res, err := New(Options{SourceRoot: src, PackageName: "pkg", Files: []string{"_icon.py"}}).Relocate(out)
	require.NoError(t, err)
	assert.Empty(t, res.Copied)

	got, err := os.ReadFile(filepath.Join(out, "pkg", "_icon.py"))
	require.NoError(t, err)
	assert.Equal(t, "class Icon: pass\n", string(got))
}
