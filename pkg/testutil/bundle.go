package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/rcc"
	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/stretchr/testify/require"
)

// WriteBundle encodes files as a compiled bundle artifact at path, using the
// same module layout the toolkit compiler produces
func WriteBundle(t *testing.T, path string, files map[types.LogicalPath][]byte) {
	t.Helper()

	entries := make([]rcc.File, 0, len(files))
	for p, data := range files {
		entries = append(entries, rcc.File{Path: "/" + p.Relative(), Data: data})
	}
	tables, err := rcc.Encode(entries, rcc.Options{Compression: rcc.CompressZlib})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rcc.RenderPython(&buf, tables, rcc.DefaultImportLine, "testutil"))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

// FakeCompiler writes a shell script that behaves like the toolkit compiler
// for "<manifest> -o <artifact>" but fails when the manifest name contains
// failOn. An empty failOn never fails. Returns the script path.
func FakeCompiler(t *testing.T, failOn string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("[ \"$2\" = \"-o\" ] || { echo 'usage: rcc <manifest> -o <artifact>' >&2; exit 2; }\n")
	if failOn != "" {
		b.WriteString("case \"$1\" in *" + failOn + "*) echo 'RCC: Error in input' >&2; exit 1;; esac\n")
	}
	b.WriteString("printf '# Resource object code (Python 3)\\nfrom PySide6 import QtCore\\n' > \"$3\"\n")

	script := filepath.Join(t.TempDir(), "fake-rcc")
	require.NoError(t, os.WriteFile(script, []byte(b.String()), 0755))
	return script
}
