package blob_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aussiebroadwan/nexus/internal/nexus/blob"
	"github.com/stretchr/testify/require"
)

func newFS(t *testing.T) (*blob.FS, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := blob.NewFS(dir)
	require.NoError(t, err)
	return fs, dir
}

func TestFS_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	fs, _ := newFS(t)

	n, err := fs.Save(ctx, "01HX-brief.txt", strings.NewReader("hello nexus"), 0)
	require.NoError(t, err)
	require.EqualValues(t, 11, n)

	obj, err := fs.Open(ctx, "01HX-brief.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(obj)
	require.NoError(t, err)
	require.NoError(t, obj.Close())
	require.Equal(t, "hello nexus", string(body))
	require.EqualValues(t, 11, obj.Size)

	require.NoError(t, fs.Delete(ctx, "01HX-brief.txt"))
	require.NoError(t, fs.Delete(ctx, "01HX-brief.txt"), "delete is idempotent")

	_, err = fs.Open(ctx, "01HX-brief.txt")
	require.ErrorIs(t, err, blob.ErrNotFound)
}

func TestFS_TooLarge(t *testing.T) {
	ctx := context.Background()
	fs, dir := newFS(t)

	_, err := fs.Save(ctx, "big.bin", strings.NewReader(strings.Repeat("x", 11)), 10)
	require.ErrorIs(t, err, blob.ErrTooLarge)

	// Neither the blob nor its temp file is left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	n, err := fs.Save(ctx, "exact.bin", strings.NewReader(strings.Repeat("x", 10)), 10)
	require.NoError(t, err)
	require.EqualValues(t, 10, n)
}

func TestFS_RejectsUnsafeNames(t *testing.T) {
	ctx := context.Background()
	fs, _ := newFS(t)

	for _, name := range []string{"", ".", "..", "../escape", `a\b`, "a/b", ".hidden"} {
		_, err := fs.Save(ctx, name, strings.NewReader("x"), 0)
		require.ErrorIs(t, err, blob.ErrInvalidName, name)
		_, err = fs.Open(ctx, name)
		require.ErrorIs(t, err, blob.ErrInvalidName, name)
	}
}

func TestFS_CancelledContext(t *testing.T) {
	fs, _ := newFS(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.Save(ctx, "c.txt", strings.NewReader("data"), 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFS_Ping(t *testing.T) {
	fs, dir := newFS(t)
	require.NoError(t, fs.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	require.Error(t, fs.Ping(context.Background()))
}
