package services

import (
	"Depot/internal/apperrors"
	"Depot/internal/models"
	"Depot/internal/storage"
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// UploadResult is the aggregate outcome of a batch upload. Partial success
// (some created, some rejected) is a distinct state the caller must be able
// to tell apart from total failure.
type UploadResult struct {
	Created []models.Item
	Failed  []UploadError
}

type UploadError struct {
	Name    string
	Code    apperrors.Code
	Message string
}

func (r *UploadResult) AllFailed() bool {
	return len(r.Created) == 0 && len(r.Failed) > 0
}

func (r *UploadResult) Partial() bool {
	return len(r.Created) > 0 && len(r.Failed) > 0
}

// Download hands the adapter everything needed to label and stream a file.
type Download struct {
	Path     string
	Name     string
	MimeType string
	Size     int64
}

type FileService interface {
	UploadFiles(fileHeaders []*multipart.FileHeader, parentID *uint) (*UploadResult, error)
	DownloadFile(id uint) (*Download, error)
}

type FileServiceImpl struct {
	itemService ItemService
	blobs       storage.BlobStore
	logService  LogService
}

func NewFileService(itemService ItemService, blobStore storage.BlobStore, logService LogService) FileService {
	return &FileServiceImpl{
		itemService: itemService,
		blobs:       blobStore,
		logService:  logService,
	}
}

// UploadFiles persists each payload independently: a rejected file never
// aborts the batch. Bytes reach the blob store before the tree entry that
// references them is inserted.
func (s *FileServiceImpl) UploadFiles(fileHeaders []*multipart.FileHeader, parentID *uint) (*UploadResult, error) {
	if parentID != nil {
		parent, err := s.itemService.GetItemByID(*parentID)
		if err != nil {
			if apperrors.Is(err, apperrors.CodeNotFound) {
				return nil, apperrors.New(apperrors.CodeParentNotFound, "parent %d not found", *parentID)
			}
			return nil, err
		}
		if !parent.Folder {
			return nil, apperrors.New(apperrors.CodeParentNotFound, "parent %d is not a folder", *parentID)
		}
	}

	result := &UploadResult{}

	for _, fileHeader := range fileHeaders {
		item, err := s.uploadOne(fileHeader, parentID)
		if err != nil {
			code := apperrors.CodeOf(err)
			if code == "" {
				return nil, err
			}
			result.Failed = append(result.Failed, UploadError{
				Name:    fileHeader.Filename,
				Code:    code,
				Message: err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *item)
	}

	return result, nil
}

func (s *FileServiceImpl) uploadOne(fileHeader *multipart.FileHeader, parentID *uint) (*models.Item, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	blob, err := s.blobs.Save(src)
	if err != nil {
		return nil, err
	}

	item, err := s.itemService.CreateFile(fileHeader.Filename, parentID, blob, detectMimeType(fileHeader))
	if err != nil {
		// The blob was committed but the tree rejected the entry; release
		// the bytes so they do not linger as an orphan.
		if removeErr := s.blobs.Remove(blob.Ref); removeErr != nil {
			s.logService.Log.WithFields(logrus.Fields{
				"blob":  blob.Ref,
				"error": removeErr.Error(),
			}).Warn("failed to release blob of rejected upload")
		}
		return nil, err
	}
	return item, nil
}

func (s *FileServiceImpl) DownloadFile(id uint) (*Download, error) {
	item, err := s.itemService.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item.Folder {
		return nil, apperrors.New(apperrors.CodeIsFolder, "item %d is a folder", id)
	}
	if item.BlobRef == "" || !s.blobs.Exists(item.BlobRef) {
		return nil, apperrors.New(apperrors.CodeBlobMissing, "blob for item %d is missing from storage", id)
	}
	path, err := s.blobs.Path(item.BlobRef)
	if err != nil {
		return nil, err
	}
	return &Download{
		Path:     path,
		Name:     item.Name,
		MimeType: item.MimeType,
		Size:     item.Size,
	}, nil
}

func detectMimeType(fileHeader *multipart.FileHeader) string {
	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	if byExt := mime.TypeByExtension(filepath.Ext(fileHeader.Filename)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
