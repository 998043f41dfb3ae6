package handlers

import (
	"Depot/internal/dto"
	"Depot/internal/mapper"
	"Depot/internal/services"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	service services.ItemService
}

func NewItemHandler(service services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// ListItems returns children of ?parentId=, root items for ?parentId=root,
// and the whole flattened tree when the filter is absent.
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	parentParam := c.Query("parentId")

	switch parentParam {
	case "":
		all, err := h.service.GetItems()
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(dto.ItemListDTO{Items: mapper.ToItemsGetDTOs(all)})
	case "root":
		roots, err := h.service.GetChildren(nil)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(dto.ItemListDTO{Items: mapper.ToItemsGetDTOs(roots)})
	default:
		parentID, err := strconv.ParseUint(parentParam, 10, 32)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_PARENT", "message": "invalid parentId"}})
		}
		id := uint(parentID)
		children, err := h.service.GetChildren(&id)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(dto.ItemListDTO{Items: mapper.ToItemsGetDTOs(children)})
	}
}

func (h *ItemHandler) GetItemByID(c *fiber.Ctx) error {
	id, err := parseItemID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_ID", "message": "invalid item ID"}})
	}

	item, err := h.service.GetItemByID(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"item": mapper.ToItemGetDTO(item)})
}

func (h *ItemHandler) CreateFolder(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		ParentID *uint  `json:"parentId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_NAME", "message": err.Error()}})
	}

	folder, err := h.service.CreateFolder(req.Name, req.ParentID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"item": mapper.ToItemGetDTO(folder)})
}

// MoveOrRenameItem applies a parent change, a rename, or both. A parentId
// of 0 moves the item to the root.
func (h *ItemHandler) MoveOrRenameItem(c *fiber.Ctx) error {
	id, err := parseItemID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_ID", "message": "invalid item ID"}})
	}

	var req struct {
		ParentID *uint   `json:"parentId"`
		Name     *string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_NAME", "message": err.Error()}})
	}

	item, err := h.service.MoveOrRename(id, req.ParentID, req.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"item": mapper.ToItemGetDTO(item)})
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseItemID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_ID", "message": "invalid item ID"}})
	}

	if err := h.service.DeleteItem(id); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetItemPath returns the ancestor chain root first, the item itself last.
func (h *ItemHandler) GetItemPath(c *fiber.Ctx) error {
	id, err := parseItemID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_ID", "message": "invalid item ID"}})
	}

	chain, err := h.service.GetPath(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ItemListDTO{Items: mapper.ToItemsGetDTOs(chain)})
}

func (h *ItemHandler) ItemsSearch(c *fiber.Ctx) error {
	name := c.Query("name", "")
	limit, err := strconv.Atoi(c.Query("$limit", "10"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_QUERY", "message": "invalid limit"}})
	}
	offset, err := strconv.Atoi(c.Query("$skip", "0"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_QUERY", "message": "invalid skip"}})
	}

	var folder *bool
	switch c.Query("kind", "") {
	case "folder":
		v := true
		folder = &v
	case "file":
		v := false
		folder = &v
	case "":
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fiber.Map{"code": "INVALID_QUERY", "message": "kind must be folder or file"}})
	}

	items, err := h.service.ItemsSearch(name, folder, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ItemListDTO{Items: mapper.ToItemsGetDTOs(items)})
}

func parseItemID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
