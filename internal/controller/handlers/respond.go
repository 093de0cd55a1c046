package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/model"
)

// fail maps workflow errors to HTTP statuses: 400 validation, 401
// credentials/linkage refusal, 404 lookup or precondition miss, 409
// uniqueness conflict, 500 everything else (including generator
// exhaustion, which the caller must not retry).
func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	switch {
	case errors.Is(err, model.ErrInvalidCourseCode):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrLinkagePending),
		errors.Is(err, model.ErrLinkageDeclined):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, model.ErrUnknownTutorCode),
		errors.Is(err, model.ErrCourseNotFound),
		errors.Is(err, model.ErrRequestNotFound),
		errors.Is(err, model.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, model.ErrDuplicateEmail),
		errors.Is(err, model.ErrAlreadyEnrolled),
		errors.Is(err, model.ErrCodeTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.Error("Request failed",
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
