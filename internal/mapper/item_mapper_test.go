package mapper

import (
	"Depot/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToItemGetDTO_FolderHidesFileFields(t *testing.T) {
	parentID := uint(7)
	folder := &models.Item{
		BaseModel: models.BaseModel{ID: 3, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		ParentID:  &parentID,
		Name:      "Docs",
		Folder:    true,
		// A folder row should never carry blob fields, but the wire shape
		// must not leak them even if one does.
		BlobRef: "stray-ref",
		Size:    42,
	}

	itemDTO := ToItemGetDTO(folder)

	assert.Equal(t, uint(3), itemDTO.ID)
	assert.Equal(t, &parentID, itemDTO.ParentID)
	assert.True(t, itemDTO.Folder)
	assert.Empty(t, itemDTO.FilePath)
	assert.Zero(t, itemDTO.Size)
	assert.Empty(t, itemDTO.MimeType)
}

func TestToItemGetDTO_File(t *testing.T) {
	file := &models.Item{
		BaseModel: models.BaseModel{ID: 9},
		Name:      "a.txt",
		Folder:    false,
		BlobRef:   "ref-9",
		Size:      11,
		MimeType:  "text/plain",
		SHA256:    "abc",
	}

	itemDTO := ToItemGetDTO(file)

	assert.Equal(t, "ref-9", itemDTO.FilePath)
	assert.Equal(t, int64(11), itemDTO.Size)
	assert.Equal(t, "text/plain", itemDTO.MimeType)
	assert.Equal(t, "abc", itemDTO.SHA256)
}

func TestToItemsGetDTOs(t *testing.T) {
	items := []models.Item{
		{BaseModel: models.BaseModel{ID: 1}, Name: "Docs", Folder: true},
		{BaseModel: models.BaseModel{ID: 2}, Name: "a.txt", BlobRef: "ref"},
	}

	itemDTOs := ToItemsGetDTOs(items)

	assert.Len(t, itemDTOs, 2)
	assert.Equal(t, "Docs", itemDTOs[0].Name)
	assert.Equal(t, "ref", itemDTOs[1].FilePath)
}
