package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/rcc"
	"github.com/arthur-debert/iconpack/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty working directory so a stray
// iconpack.toml cannot leak in
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "external", cfg.Compiler.Backend)
	assert.Equal(t, "pyside6-rcc", cfg.Compiler.Command)
	assert.Equal(t, 5*time.Minute, cfg.Compiler.Timeout.Std())
	assert.Equal(t, "pyside-v1", cfg.Compiler.Adapter)
	assert.Equal(t, []string{"__init__.py", "_icon.py"}, cfg.Package.FacadeFiles)
	assert.Equal(t, 4, cfg.Build.Concurrency)
	assert.True(t, cfg.Source.Fetch)

	axes, err := cfg.Axes()
	require.NoError(t, err)
	assert.Equal(t, types.AllAxes(), axes)

	styles, sizes, err := cfg.ExtractAxes()
	require.NoError(t, err)
	assert.Equal(t, []types.Style{types.StyleOutlined}, styles)
	assert.Equal(t, []types.Size{types.Size20}, sizes)
}

func TestLoadFileEnvAndOverrides(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
[compiler]
backend = "native"
timeout = "90s"

[build]
styles = ["sharp"]
sizes = [48]
`), 0644))
	t.Setenv("ICONPACK_BUILD__CONCURRENCY", "2")
	t.Setenv("ICONPACK_SOURCE__SPARSE_PATH", "symbols/android/")

	cfg, err := Load("", map[string]interface{}{"package.name": "icons"})
	require.NoError(t, err)

	assert.Equal(t, "native", cfg.Compiler.Backend)
	assert.Equal(t, 90*time.Second, cfg.Compiler.Timeout.Std())
	assert.Equal(t, 2, cfg.Build.Concurrency)
	assert.Equal(t, "symbols/android/", cfg.Source.SparsePath)
	assert.Equal(t, "icons", cfg.Package.Name)

	axes, err := cfg.Axes()
	require.NoError(t, err)
	assert.Equal(t, []types.IconAxis{{Style: types.StyleSharp, Size: types.Size48}}, axes)
}

func TestLoadEnvList(t *testing.T) {
	inTempDir(t)
	t.Setenv("ICONPACK_BUILD__STYLES", "outlined,rounded")
	t.Setenv("ICONPACK_BUILD__SIZES", "24")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"outlined", "rounded"}, cfg.Build.Styles)
	assert.Equal(t, []int{24}, cfg.Build.Sizes)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	dir := inTempDir(t)

	_, err := Load(filepath.Join(dir, "nope.toml"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]interface{}
		code     errors.ErrorCode
	}{
		{"backend", map[string]interface{}{"compiler.backend": "magic"}, errors.ErrConfigValid},
		{"adapter", map[string]interface{}{"compiler.adapter": "pyside-v9"}, errors.ErrConfigValid},
		{"style", map[string]interface{}{"build.styles": []string{"bold"}}, errors.ErrConfigValid},
		{"size", map[string]interface{}{"build.sizes": []int{32}}, errors.ErrConfigValid},
		{"extract_style", map[string]interface{}{"extract.styles": []string{"filled"}}, errors.ErrConfigValid},
		{"concurrency", map[string]interface{}{"build.concurrency": 0}, errors.ErrConfigValid},
		{"compress", map[string]interface{}{"bundle.compress": "lzma"}, errors.ErrConfigValid},
		{"timeout", map[string]interface{}{"compiler.timeout": "soon"}, errors.ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			_, err := Load("", tt.override)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestCompression(t *testing.T) {
	for value, want := range map[string]rcc.Compression{
		"":     rcc.CompressZlib,
		"zlib": rcc.CompressZlib,
		"zstd": rcc.CompressZstd,
		"none": rcc.CompressNone,
	} {
		cfg := &Config{Bundle: Bundle{Compress: value}}
		got, err := cfg.Compression()
		require.NoError(t, err)
		assert.Equal(t, want, got, value)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	inTempDir(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)

	out, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "5m0s")

	var back Config
	require.NoError(t, toml.Unmarshal(out, &back))
	assert.Equal(t, cfg.Compiler.Timeout, back.Compiler.Timeout)
	assert.Equal(t, cfg.Source, back.Source)
	assert.Equal(t, cfg.Package, back.Package)
	assert.Equal(t, cfg.Build, back.Build)
	assert.Equal(t, cfg.Bundle, back.Bundle)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[compiler]\n")
	assert.Contains(t, content, "# backend = \"external\"")
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}
}
