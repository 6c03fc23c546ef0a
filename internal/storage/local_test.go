package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "1-logo.png", strings.NewReader("png-bytes")))

	onDisk, err := os.ReadFile(filepath.Join(dir, "1-logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(onDisk))

	rc, err := store.Open(ctx, "1-logo.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "1-logo.png"))
	assert.ErrorIs(t, store.Delete(ctx, "1-logo.png"), ErrNotFound)

	_, err = store.Open(ctx, "1-logo.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_RejectsPathNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()

	err = store.Save(ctx, "../escape.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = store.Open(ctx, "../escape.png")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "a/b"), ErrNotFound)
}

func TestLocalStore_SaveReadError(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zerolog.Nop())
	require.NoError(t, err)

	err = store.Save(context.Background(), "broken.png", io.MultiReader(strings.NewReader("part"), errReader{}))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "broken.png"))
	assert.True(t, os.IsNotExist(statErr), "partial file should be removed")
}

func TestNewLocalStore_InvalidDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewLocalStore(filepath.Join(file, "uploads"), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create upload directory")
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}
