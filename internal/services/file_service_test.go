package services

import (
	"Depot/internal/apperrors"
	"bytes"
	"mime/multipart"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupFileService(t *testing.T) (FileService, ItemService) {
	itemService, _, blobStore := setupTestEngine(t)
	logService := NewLogService(setupTestConfig(t))
	return NewFileService(itemService, blobStore, logService), itemService
}

func makeFileHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		assert.NoError(t, err)
		_, err = part.Write([]byte(content))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func TestFileService_UploadFiles_AllCreated(t *testing.T) {
	fileService, _ := setupFileService(t)

	result, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{
		"x.txt": "first",
		"y.txt": "second",
	}), nil)

	assert.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Empty(t, result.Failed)
	assert.False(t, result.Partial())
	assert.False(t, result.AllFailed())

	for _, item := range result.Created {
		assert.False(t, item.Folder)
		assert.NotEmpty(t, item.BlobRef)
		assert.NotZero(t, item.Size)
	}
}

func TestFileService_UploadFiles_PartialOutcome(t *testing.T) {
	fileService, _ := setupFileService(t)

	first, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "v1"}), nil)
	assert.NoError(t, err)
	assert.Len(t, first.Created, 1)

	second, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{
		"x.txt": "v2",
		"y.txt": "fresh",
	}), nil)
	assert.NoError(t, err)

	assert.True(t, second.Partial())
	assert.Len(t, second.Created, 1)
	assert.Equal(t, "y.txt", second.Created[0].Name)
	assert.Len(t, second.Failed, 1)
	assert.Equal(t, "x.txt", second.Failed[0].Name)
	assert.Equal(t, apperrors.CodeDuplicate, second.Failed[0].Code)
}

func TestFileService_UploadFiles_AllFailed(t *testing.T) {
	fileService, _ := setupFileService(t)

	_, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "v1"}), nil)
	assert.NoError(t, err)

	result, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "again"}), nil)
	assert.NoError(t, err)
	assert.True(t, result.AllFailed())
	assert.False(t, result.Partial())
}

func TestFileService_UploadFiles_ParentNotFound(t *testing.T) {
	fileService, _ := setupFileService(t)

	missing := uint(123)
	_, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "v"}), &missing)
	assert.True(t, apperrors.Is(err, apperrors.CodeParentNotFound))
}

func TestFileService_UploadFiles_IntoFolder(t *testing.T) {
	fileService, itemService := setupFileService(t)

	docs, err := itemService.CreateFolder("Docs", nil)
	assert.NoError(t, err)

	result, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "v"}), &docs.ID)
	assert.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.Equal(t, docs.ID, *result.Created[0].ParentID)

	// Same name under a different parent is no conflict.
	atRoot, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "v"}), nil)
	assert.NoError(t, err)
	assert.Len(t, atRoot.Created, 1)
}

func TestFileService_DownloadFile(t *testing.T) {
	fileService, _ := setupFileService(t)

	result, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "download me"}), nil)
	assert.NoError(t, err)
	item := result.Created[0]

	download, err := fileService.DownloadFile(item.ID)
	assert.NoError(t, err)
	assert.Equal(t, "x.txt", download.Name)
	assert.Equal(t, "text/plain; charset=utf-8", download.MimeType)

	data, err := os.ReadFile(download.Path)
	assert.NoError(t, err)
	assert.Equal(t, "download me", string(data))
}

func TestFileService_DownloadFile_Errors(t *testing.T) {
	fileService, itemService := setupFileService(t)

	_, err := fileService.DownloadFile(999)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	docs, err := itemService.CreateFolder("Docs", nil)
	assert.NoError(t, err)
	_, err = fileService.DownloadFile(docs.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeIsFolder))
}

func TestFileService_DownloadFile_BlobMissing(t *testing.T) {
	itemService, _, blobStore := setupTestEngine(t)
	logService := NewLogService(setupTestConfig(t))
	fileService := NewFileService(itemService, blobStore, logService)

	result, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "soon gone"}), nil)
	assert.NoError(t, err)
	item := result.Created[0]

	// Yank the blob out from under the tree entry.
	assert.NoError(t, blobStore.Remove(item.BlobRef))

	_, err = fileService.DownloadFile(item.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeBlobMissing))
}

func TestFileService_DeletedFileDownloadsAsNotFound(t *testing.T) {
	fileService, itemService := setupFileService(t)

	result, err := fileService.UploadFiles(makeFileHeaders(t, map[string]string{"x.txt": "bye"}), nil)
	assert.NoError(t, err)
	item := result.Created[0]

	assert.NoError(t, itemService.DeleteItem(item.ID))

	// The tree entry is gone, so this is NotFound, not BlobMissing.
	_, err = fileService.DownloadFile(item.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}
