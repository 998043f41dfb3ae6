package handlers

import (
	"Depot/internal/apperrors"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// statusOf maps engine error codes to wire statuses. Integrity failures
// (missing blobs, cycles) are server faults, never client ones.
func statusOf(code apperrors.Code) int {
	switch code {
	case apperrors.CodeNotFound, apperrors.CodeParentNotFound:
		return http.StatusNotFound
	case apperrors.CodeDuplicateFolder, apperrors.CodeDuplicateName, apperrors.CodeDuplicate:
		return http.StatusConflict
	case apperrors.CodeInvalidName, apperrors.CodeInvalidParent,
		apperrors.CodeIsFolder, apperrors.CodeFolderNotEmpty:
		return http.StatusBadRequest
	case apperrors.CodeBlobMissing, apperrors.CodeCycleDetected:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(statusOf(appErr.Code)).JSON(fiber.Map{
			"error": fiber.Map{"code": appErr.Code, "message": appErr.Message},
		})
	}
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{"code": "INTERNAL", "message": err.Error()},
	})
}
