package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOpenDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	key, size, err := store.Save(ctx, "resume.pdf", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSameFileNameDoesNotCollide(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	a, _, err := store.Save(ctx, "cv.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	b, _, err := store.Save(ctx, "cv.pdf", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "../etc/passwd")
	assert.Error(t, err)
	assert.Error(t, store.Delete(context.Background(), "/etc/passwd"))
}

func TestNewRequiresDir(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}
