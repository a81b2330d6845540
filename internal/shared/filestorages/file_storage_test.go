package filestorages

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ValidKey(t *testing.T) {
	t.Parallel()

	storage, dir := newTestStorage(t)
	ctx := context.Background()

	validKeys := []string{
		"index.html",
		"css/site.css",
		"nested/deep/path/file.txt",
		"file-with-dashes.txt",
		"file.with.dots.txt",
	}

	for _, key := range validKeys {
		t.Run(key, func(t *testing.T) {
			writeFile(t, dir, key, "content of "+key)

			file, err := storage.Open(ctx, key)
			require.NoError(t, err, "key %q should be valid", key)
			defer file.Close()

			content, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "content of "+key, string(content))

			info, err := file.Stat()
			require.NoError(t, err)
			assert.Equal(t, filepath.Base(key), info.Name())
		})
	}
}

func TestOpen_InvalidKey(t *testing.T) {
	t.Parallel()

	storage, _ := newTestStorage(t)
	ctx := context.Background()

	invalidKeys := []string{
		"",
		"/absolute/path",
		"..",
		"../file.txt",
		"../../etc/passwd",
		"css/../../etc/passwd",
		"../",
		"a/../..",
		".",
	}

	for _, key := range invalidKeys {
		t.Run(key, func(t *testing.T) {
			_, err := storage.Open(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey, "key %q should be invalid", key)
		})
	}
}

func TestOpen_FileNotFound(t *testing.T) {
	t.Parallel()

	storage, _ := newTestStorage(t)

	_, err := storage.Open(context.Background(), "nonexistent.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestOpen_DirectoryIsNotFound(t *testing.T) {
	t.Parallel()

	storage, dir := newTestStorage(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0755))

	_, err := storage.Open(context.Background(), "css")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestOpen_MissingRootDir(t *testing.T) {
	t.Parallel()

	storage, err := NewFileStorage(filepath.Join(t.TempDir(), "www"))
	require.NoError(t, err)

	_, err = storage.Open(context.Background(), "index.html")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestOpen_CancelledContext(t *testing.T) {
	t.Parallel()

	storage, dir := newTestStorage(t)
	writeFile(t, dir, "index.html", "<html></html>")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.Open(ctx, "index.html")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_Seekable(t *testing.T) {
	t.Parallel()

	storage, dir := newTestStorage(t)
	writeFile(t, dir, "data.txt", "0123456789")

	file, err := storage.Open(context.Background(), "data.txt")
	require.NoError(t, err)
	defer file.Close()

	_, err = file.Seek(5, io.SeekStart)
	require.NoError(t, err)
	rest, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "56789", string(rest))
}

func TestNewFileStorage_EmptyRoot(t *testing.T) {
	t.Parallel()

	_, err := NewFileStorage("")
	assert.ErrorIs(t, err, ErrInvalidRootDir)
}

func newTestStorage(t *testing.T) (FileStorage, string) {
	tmpDir := t.TempDir()
	storage, err := NewFileStorage(tmpDir)
	require.NoError(t, err)
	return storage, tmpDir
}

func writeFile(t *testing.T, dir, key, content string) {
	t.Helper()
	fullPath := filepath.Join(dir, key)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}
