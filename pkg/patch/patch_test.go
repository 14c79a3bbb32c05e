package patch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artifact = `# Resource object code (Python 3)
# WARNING! All changes made in this file will be lost!

from BindingX import QtCore

qt_resource_data = b"\
"

def qInitResources():
    QtCore.qRegisterResourceData(0x03, qt_resource_struct, qt_resource_name, qt_resource_data)

qInitResources()
`

const chain = `try:
    from qtpy import QtCore
except ImportError:
    try:
        from PySide6 import QtCore
    except ImportError:
        from PySide2 import QtCore`

func TestImportAdapterPatch(t *testing.T) {
	a, err := Lookup(DefaultAdapter)
	require.NoError(t, err)

	out, err := a.Patch([]byte(artifact))
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, "\n"+chain+"\n")
	assert.NotContains(t, got, "BindingX")

	qtpy := strings.Index(got, "from qtpy import QtCore")
	pyside6 := strings.Index(got, "from PySide6 import QtCore")
	pyside2 := strings.Index(got, "from PySide2 import QtCore")
	assert.True(t, qtpy < pyside6 && pyside6 < pyside2, "bindings must be tried in priority order")

	// everything around the import is preserved
	assert.True(t, strings.HasPrefix(got, "# Resource object code (Python 3)\n"))
	assert.True(t, strings.HasSuffix(got, "qInitResources()\n"))
}

func TestImportAdapterMismatch(t *testing.T) {
	a, err := Lookup(DefaultAdapter)
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		matches int
	}{
		{"no import", "qt_resource_data = b\"\"\n", 0},
		{"already patched", "\n" + chain + "\n", 0},
		{"two imports", "from PySide6 import QtCore\nfrom PySide2 import QtCore\n", 2},
		{"different module", "from PySide6 import QtGui\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Patch([]byte(tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPatchMismatch))
			assert.Equal(t, tt.matches, errors.GetErrorDetails(err)["matches"])
		})
	}
}

func TestPatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icons_outlined_20.py")
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0640))

	p, err := New(DefaultAdapter)
	require.NoError(t, err)

	require.NoError(t, p.PatchFile(path))

	patched, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(patched), chain)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	t.Run("second patch is detected", func(t *testing.T) {
		err := p.PatchFile(path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPatchMismatch))

		again, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, patched, again, "a mismatch must leave the file untouched")
		assert.Equal(t, 1, strings.Count(string(again), "from qtpy import QtCore"))
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestPatchFileMissing(t *testing.T) {
	p := NewWithAdapter(NewImportAdapter("test", "QtCore", Bindings))
	err := p.PatchFile(filepath.Join(t.TempDir(), "nope.py"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestRegistry(t *testing.T) {
	a, err := Lookup(DefaultAdapter)
	require.NoError(t, err)
	assert.Equal(t, DefaultAdapter, a.Version())

	_, err = Lookup("pyside-v0")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

	custom := NewImportAdapter("test-gui", "QtGui", []string{"PyQt6", "PyQt5"})
	require.NoError(t, Register(custom))
	assert.True(t, errors.IsErrorCode(Register(custom), errors.ErrAlreadyExists))

	out, err := custom.Patch([]byte("from PySide6 import QtGui\n"))
	require.NoError(t, err)
	assert.Equal(t, "try:\n    from PyQt6 import QtGui\nexcept ImportError:\n    from PyQt5 import QtGui\n", string(out))
}
