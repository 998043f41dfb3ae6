package storage

import (
	"Depot/internal/config"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupTestBlobStore(t *testing.T) BlobStore {
	cfg := &config.Configuration{}
	cfg.Storage.Path = t.TempDir()
	store, err := NewBlobStore(cfg)
	assert.NoError(t, err)
	return store
}

func TestBlobStore_SaveAndOpen(t *testing.T) {
	store := setupTestBlobStore(t)

	info, err := store.Save(strings.NewReader("hello depot"))

	assert.NoError(t, err)
	assert.NotEmpty(t, info.Ref)
	assert.Equal(t, int64(len("hello depot")), info.Size)
	assert.Len(t, info.SHA256, 64)

	reader, err := store.Open(info.Ref)
	assert.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, "hello depot", string(data))
}

func TestBlobStore_OpaqueRefs(t *testing.T) {
	store := setupTestBlobStore(t)

	first, err := store.Save(strings.NewReader("same bytes"))
	assert.NoError(t, err)
	second, err := store.Save(strings.NewReader("same bytes"))
	assert.NoError(t, err)

	assert.NotEqual(t, first.Ref, second.Ref)
	assert.Equal(t, first.SHA256, second.SHA256)
}

func TestBlobStore_Remove(t *testing.T) {
	store := setupTestBlobStore(t)

	info, err := store.Save(strings.NewReader("ephemeral"))
	assert.NoError(t, err)
	assert.True(t, store.Exists(info.Ref))

	err = store.Remove(info.Ref)
	assert.NoError(t, err)
	assert.False(t, store.Exists(info.Ref))

	_, err = store.Open(info.Ref)
	assert.Error(t, err)
}

func TestBlobStore_Refs(t *testing.T) {
	store := setupTestBlobStore(t)

	first, err := store.Save(strings.NewReader("one"))
	assert.NoError(t, err)
	second, err := store.Save(strings.NewReader("two"))
	assert.NoError(t, err)

	refs, err := store.Refs()
	assert.NoError(t, err)
	assert.Len(t, refs, 2)

	names := []string{refs[0].Ref, refs[1].Ref}
	assert.Contains(t, names, first.Ref)
	assert.Contains(t, names, second.Ref)
}

func TestBlobStore_RejectsPathTraversalRefs(t *testing.T) {
	store := setupTestBlobStore(t)

	_, err := store.Path("../escape")
	assert.Error(t, err)

	err = store.Remove("nested/ref")
	assert.Error(t, err)
	assert.False(t, store.Exists(""))
}
