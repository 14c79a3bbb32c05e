package iconpack

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/bundle"
	"github.com/arthur-debert/iconpack/pkg/config"
	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/testutil"
	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	outlined20 = types.IconAxis{Style: types.StyleOutlined, Size: types.Size20}
	outlined24 = types.IconAxis{Style: types.StyleOutlined, Size: types.Size24}
)

// run executes the CLI in a scratch working directory with an isolated
// log location and returns its output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "iconpack version")
}

func TestNoCommand(t *testing.T) {
	isolate(t)

	out, err := run(t)
	require.Error(t, err)
	assert.Equal(t, MsgErrNoCommand, err.Error())
	assert.Contains(t, out, "USAGE:")
}

func TestHelpTopics(t *testing.T) {
	isolate(t)

	out, err := run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "patching")
	assert.Contains(t, out, "--output")
}

func TestConfigCommand(t *testing.T) {
	t.Run("effective", func(t *testing.T) {
		isolate(t)
		t.Setenv("ICONPACK_BUILD__CONCURRENCY", "7")

		out, err := run(t, "config")
		require.NoError(t, err)
		assert.Contains(t, out, "[compiler]")
		assert.Contains(t, out, "concurrency = 7")
	})

	t.Run("defaults", func(t *testing.T) {
		isolate(t)

		out, err := run(t, "config", "--defaults")
		require.NoError(t, err)
		assert.Equal(t, config.GenerateConfigContent(), out)
	})

	t.Run("write refuses to overwrite", func(t *testing.T) {
		dir := isolate(t)

		_, err := run(t, "config", "--defaults", "--write")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, config.FileName))

		_, err = run(t, "config", "--write")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("invalid file", func(t *testing.T) {
		isolate(t)

		_, err := run(t, "config", "--config", "missing.toml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

// buildPackage compiles one axis for a corpus holding home and star into
// a fresh package root
func buildPackage(t *testing.T, dir string, axis types.IconAxis) string {
	t.Helper()

	corpus := testutil.SetupCorpus(t)
	corpus.AddAllVariants(t, "home", axis)
	corpus.AddAllVariants(t, "star", axis)

	packageRoot := filepath.Join(dir, "pkg")
	reportPath := filepath.Join(dir, "build.yaml")
	out, err := run(t, "build", "--no-color", "--no-fetch",
		"--backend", "native",
		"--styles", axis.Style.String(), "--sizes", axis.Size.String(),
		"--source-root", corpus.Base(),
		"--package-root", packageRoot,
		"--report", reportPath)
	require.NoError(t, err, out)

	assert.Contains(t, out, "build: 1 of 1 axes succeeded")
	assert.FileExists(t, reportPath)
	return packageRoot
}

func TestBuildCommand(t *testing.T) {
	dir := isolate(t)
	packageRoot := buildPackage(t, dir, outlined24)

	b, err := bundle.Load(bundle.ArtifactPath(packageRoot, outlined24))
	require.NoError(t, err)
	assert.Equal(t, 4, b.Len())

	home := types.IconSelector{Name: "home", Style: types.StyleOutlined, Fill: true, Size: types.Size24}
	data, err := b.ReadFile(home.LogicalPath())
	require.NoError(t, err)
	assert.Equal(t, testutil.SVG(home), string(data))
}

func TestBuildCommandMissingSource(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "build", "--no-color", "--no-fetch",
		"--backend", "native",
		"--styles", "sharp", "--sizes", "20,48",
		"--source-root", filepath.Join(dir, "nowhere"),
		"--package-root", filepath.Join(dir, "pkg"))
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrAxesFailed))
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
	assert.Contains(t, err.Error(), "2 of 2 axes failed")
	assert.Contains(t, out, "build: 0 of 2 axes succeeded")
}

func TestBuildCommandInvalidStyle(t *testing.T) {
	isolate(t)

	_, err := run(t, "build", "--no-fetch", "--styles", "bold")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestExtractCommand(t *testing.T) {
	dir := isolate(t)
	packageRoot := buildPackage(t, dir, outlined24)
	require.NoError(t, os.WriteFile(filepath.Join(packageRoot, "__init__.py"), []byte("from ._icon import *\n"), 0644))

	output := filepath.Join(dir, "vendor")
	reportPath := filepath.Join(dir, "extract.yaml")
	out, err := run(t, "extract", "--no-color",
		"--backend", "native",
		"--names", "home",
		"--styles", "outlined", "--sizes", "24",
		"--package-root", packageRoot,
		"-o", output,
		"--report", reportPath)
	require.NoError(t, err, out)

	assert.Contains(t, out, "extract: 1 of 1 axes succeeded")
	assert.Contains(t, out, "_icon.py", "missing facade file is reported as a warning")
	assert.FileExists(t, reportPath)
	assert.FileExists(t, filepath.Join(output, "qt_material_icons", "__init__.py"))
	assert.FileExists(t, filepath.Join(output, "qt_material_icons", "resources", "__init__.py"))

	minimal, err := bundle.Load(filepath.Join(output, "qt_material_icons", "resources", bundle.ArtifactName(outlined24)))
	require.NoError(t, err)
	assert.Equal(t, 2, minimal.Len())

	star := types.IconSelector{Name: "star", Style: types.StyleOutlined, Size: types.Size24}
	assert.False(t, minimal.Has(star.LogicalPath()))
}

func TestExtractCommandDefaultAxes(t *testing.T) {
	dir := isolate(t)
	packageRoot := buildPackage(t, dir, outlined20)

	output := filepath.Join(dir, "vendor")
	out, err := run(t, "extract", "--no-color",
		"--backend", "native",
		"--names", "home",
		"--package-root", packageRoot,
		"-o", output)
	require.NoError(t, err, out)

	assert.Contains(t, out, "extract: 1 of 1 axes succeeded")
	assert.FileExists(t, filepath.Join(output, "qt_material_icons", "resources", bundle.ArtifactName(outlined20)))
}

func TestExtractCommandRefusesInstalledPackage(t *testing.T) {
	dir := isolate(t)
	packageRoot := filepath.Join(dir, "qt_material_icons")
	require.NoError(t, os.MkdirAll(packageRoot, 0755))
	iconFile := filepath.Join(packageRoot, "_icon.py")
	require.NoError(t, os.WriteFile(iconFile, []byte("class Icon: pass\n"), 0644))

	_, err := run(t, "extract",
		"--backend", "native",
		"--names", "home",
		"--package-root", packageRoot,
		"-o", dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	got, err := os.ReadFile(iconFile)
	require.NoError(t, err)
	assert.Equal(t, "class Icon: pass\n", string(got))
}

func TestExtractCommandValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no names", []string{"extract", "-o", "out"}},
		{"no output", []string{"extract", "--names", "home"}},
		{"bad name", []string{"extract", "--names", "../home", "-o", "out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			assert.NoDirExists(t, "out")
		})
	}
}
