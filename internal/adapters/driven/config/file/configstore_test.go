package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("library.data_dir", "/tmp/books"))
	require.NoError(t, store.Set("segmenter.max_segment_length", 1500))
	require.NoError(t, store.Set("watch.enabled", true))

	assert.Equal(t, "/tmp/books", store.GetString("library.data_dir"))
	assert.Equal(t, 1500, store.GetInt("segmenter.max_segment_length"))
	assert.True(t, store.GetBool("watch.enabled"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("reading.context_window", 3))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, second.GetInt("reading.context_window"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[segmenter]\nmax_segment_length = 1200\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 1200, store.GetInt("segmenter.max_segment_length"))
}
