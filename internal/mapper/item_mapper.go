package mapper

import (
	"Depot/internal/dto"
	"Depot/internal/models"
)

func ToItemGetDTO(item *models.Item) dto.ItemGetDTO {
	itemDTO := dto.ItemGetDTO{
		ID:           item.ID,
		ParentID:     item.ParentID,
		Name:         item.Name,
		Folder:       item.Folder,
		Creation:     item.CreatedAt,
		Modification: item.UpdatedAt,
	}
	if !item.Folder {
		itemDTO.FilePath = item.BlobRef
		itemDTO.Size = item.Size
		itemDTO.MimeType = item.MimeType
		itemDTO.SHA256 = item.SHA256
	}
	return itemDTO
}

func ToItemsGetDTOs(items []models.Item) []dto.ItemGetDTO {
	itemDTOs := make([]dto.ItemGetDTO, 0, len(items))
	for i := range items {
		itemDTOs = append(itemDTOs, ToItemGetDTO(&items[i]))
	}
	return itemDTOs
}
