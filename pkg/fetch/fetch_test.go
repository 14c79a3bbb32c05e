package fetch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com"}, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

// upstream creates a repository with symbols/web and an unrelated tree
func upstream(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	gitRun(t, dir, "init", "--quiet")
	gitRun(t, dir, "symbolic-ref", "HEAD", "refs/heads/master")
	files := map[string]string{
		"symbols/web/home/materialsymbolsoutlined/home_20px.svg": "<svg/>",
		"png/home/large.png": "binary",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "--quiet", "-m", "corpus")
	return dir
}

func TestEnsureSparseCheckout(t *testing.T) {
	requireGit(t)
	repo := upstream(t)
	dest := filepath.Join(t.TempDir(), "material-design-icons")

	f := New(Options{Repository: "file://" + filepath.ToSlash(repo)})
	fetched, err := f.Ensure(context.Background(), dest)
	require.NoError(t, err)
	assert.True(t, fetched)

	assert.FileExists(t, filepath.Join(dest, "symbols", "web", "home", "materialsymbolsoutlined", "home_20px.svg"))
	assert.NoDirExists(t, filepath.Join(dest, "png"))

	fetched, err = f.Ensure(context.Background(), dest)
	require.NoError(t, err)
	assert.False(t, fetched, "existing checkout should be reused")
}

func TestEnsureFailureCleansUp(t *testing.T) {
	requireGit(t)
	dest := filepath.Join(t.TempDir(), "material-design-icons")

	f := New(Options{Repository: "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "nope"))})
	_, err := f.Ensure(context.Background(), dest)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetch))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExecute))
	assert.NoDirExists(t, dest)
}

func TestNewDefaults(t *testing.T) {
	f := New(Options{})
	assert.Equal(t, DefaultRepository, f.opts.Repository)
	assert.Equal(t, DefaultSparsePath, f.opts.SparsePath)
	assert.Equal(t, DefaultRef, f.opts.Ref)
	assert.Equal(t, DefaultTimeout, f.opts.Timeout)
	assert.Equal(t, "git", f.opts.Git)
}
