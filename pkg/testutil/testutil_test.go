package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/rcc"
	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusLayout(t *testing.T) {
	c := SetupCorpus(t)
	sel := types.IconSelector{Name: "home", Style: types.StyleOutlined, Fill: true, Size: types.Size20}

	p := c.AddIcon(t, sel, "<svg/>")

	assert.Equal(t,
		filepath.Join(c.Root, "home", "materialsymbolsoutlined", "home_fill1_20px.svg"), p)
	assert.FileExists(t, p)
}

func TestAddAllVariants(t *testing.T) {
	c := SetupCorpus(t)
	axis := types.IconAxis{Style: types.StyleSharp, Size: types.Size48}

	written := c.AddAllVariants(t, "close", axis)

	assert.Len(t, written, 2)
	for p := range written {
		assert.FileExists(t, filepath.Join(c.Base(), filepath.FromSlash(p.Relative())))
	}
}

func TestWriteBundle(t *testing.T) {
	sel := types.IconSelector{Name: "home", Style: types.StyleOutlined, Size: types.Size20}
	path := filepath.Join(t.TempDir(), "icons_outlined_20.py")

	WriteBundle(t, path, map[types.LogicalPath][]byte{sel.LogicalPath(): []byte("<svg/>")})

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	tables, err := rcc.ParsePython(src)
	require.NoError(t, err)
	files, err := rcc.Decode(tables)
	require.NoError(t, err)
	assert.Equal(t, []byte("<svg/>"), files["/"+sel.LogicalPath().Relative()])
}

func TestCaptureLogs(t *testing.T) {
	logs := CaptureLogs(t)
	logger := log.With().Str("component", "test").Logger()

	logger.Error().Str("icon", "home").Msg("boom")
	logger.Info().Msg("fine")

	errs := logs.Entries(zerolog.ErrorLevel)
	require.Len(t, errs, 1)
	assert.Equal(t, "home", errs[0]["icon"])
	assert.Len(t, logs.Entries(zerolog.InfoLevel), 1)
}
