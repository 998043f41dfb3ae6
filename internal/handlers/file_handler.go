package handlers

import (
	"Depot/internal/dto"
	"Depot/internal/mapper"
	"Depot/internal/services"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	service services.FileService
}

func NewFileHandler(service services.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// UploadFiles accepts a multipart batch under the "files" field. All
// created: 201 with the items. Mixed outcome: 207 listing both sides.
// Nothing created: 400 with the per-file failures.
func (h *FileHandler) UploadFiles(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_FORM", "message": err.Error()}})
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_FORM", "message": "no files in request"}})
	}

	var parentID *uint
	if raw := c.FormValue("parentId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_PARENT", "message": "invalid parentId"}})
		}
		id := uint(parsed)
		parentID = &id
	}

	result, err := h.service.UploadFiles(fileHeaders, parentID)
	if err != nil {
		return errorResponse(c, err)
	}

	failed := make([]dto.UploadErrorDTO, 0, len(result.Failed))
	for _, f := range result.Failed {
		failed = append(failed, dto.UploadErrorDTO{Name: f.Name, Code: string(f.Code), Message: f.Message})
	}

	switch {
	case result.AllFailed():
		return c.Status(http.StatusBadRequest).JSON(dto.UploadResultDTO{
			Successful: []dto.ItemGetDTO{},
			Failed:     failed,
		})
	case result.Partial():
		return c.Status(http.StatusMultiStatus).JSON(dto.UploadResultDTO{
			Successful: mapper.ToItemsGetDTOs(result.Created),
			Failed:     failed,
		})
	default:
		return c.Status(http.StatusCreated).JSON(dto.ItemListDTO{Items: mapper.ToItemsGetDTOs(result.Created)})
	}
}

func (h *FileHandler) DownloadFile(c *fiber.Ctx) error {
	id, err := parseItemID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_ID", "message": "invalid item ID"}})
	}

	download, err := h.service.DownloadFile(id)
	if err != nil {
		return errorResponse(c, err)
	}

	mimeType := download.MimeType
	if mimeType == "" {
		mimeType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, mimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", download.Name))
	return c.SendFile(download.Path)
}
