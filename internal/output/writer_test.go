package output

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileWriter_Commit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.maf")

	fw, err := Create(path, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, path, fw.Path())

	_, err = fw.Write([]byte("A\tFILTER\n"))
	require.NoError(t, err)

	assert.NoFileExists(t, path, "target must not exist before Commit")

	require.NoError(t, fw.Commit())

	data, err := os.ReadFile(path) //nolint:gosec // test helper
	require.NoError(t, err)
	assert.Equal(t, "A\tFILTER\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileWriter_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.maf")

	fw, err := Create(path, WithPermissions(0o600), WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, fw.Commit())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileWriter_AbortKeepsExistingTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.maf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644)) //nolint:gosec // test helper

	fw, err := Create(path, WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = fw.Write([]byte("new"))
	require.NoError(t, err)

	fw.Abort()
	fw.Abort()

	data, err := os.ReadFile(path) //nolint:gosec // test helper
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staged file must be removed")
}

func TestFileWriter_AbortAfterCommitIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.maf")

	fw, err := Create(path, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, fw.Commit())

	fw.Abort()

	assert.FileExists(t, path)
}

func TestFileWriter_UseAfterCommit(t *testing.T) {
	fw, err := Create(filepath.Join(t.TempDir(), "out.maf"), WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, fw.Commit())

	_, err = fw.Write([]byte("late"))
	require.ErrorIs(t, err, os.ErrClosed)
	require.ErrorIs(t, fw.Commit(), os.ErrClosed)
}

func TestFileWriter_OverwriteIsLogged(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := filepath.Join(t.TempDir(), "out.maf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644)) //nolint:gosec // test helper

	fw, err := Create(path, WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, fw.Commit())

	assert.Contains(t, buf.String(), "overwriting existing file")
}

func TestCreate_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Create(filepath.Join(dir, "missing", "out.maf"), WithLogger(quietLogger()))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Create(dir, WithLogger(quietLogger()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestCreate_RelativePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	fw, err := Create("out.maf", WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, fw.Commit())

	assert.FileExists(t, filepath.Join(dir, "out.maf"))
}

func TestFileWriter_SymlinkTargetIsReplaced(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.maf")
	link := filepath.Join(dir, "link.maf")

	require.NoError(t, os.WriteFile(target, []byte("old\n"), 0o644)) //nolint:gosec // test helper

	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	fw, err := Create(link, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.False(t, fw.Direct())
	assert.Equal(t, link, fw.Path())

	_, err = fw.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, fw.Commit())

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must survive")

	data, err := os.ReadFile(target) //nolint:gosec // test helper
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileWriter_DanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link.maf")

	if err := os.Symlink("real.maf", link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	fw, err := Create(link, WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = fw.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, fw.Commit())

	data, err := os.ReadFile(filepath.Join(dir, "real.maf"))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestFileWriter_KeepsExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.maf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
	require.NoError(t, os.Chmod(path, 0o640))

	fw, err := Create(path, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, fw.Commit())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}
