package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListPendingStudents returns the tutor's students waiting for a
// decision.
func (h *Handlers) ListPendingStudents(c *fiber.Ctx) error {
	students, err := h.linkage.ListPending(c.Context(), subjectID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"students": students})
}

// AcceptStudent approves a pending link request.
func (h *Handlers) AcceptStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "invalid student id"))
	}

	if err := h.linkage.Accept(c.Context(), studentID, subjectID(c)); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "approved"})
}

// DeclineStudent declines a pending link request.
func (h *Handlers) DeclineStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "invalid student id"))
	}

	if err := h.linkage.Decline(c.Context(), studentID, subjectID(c)); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "declined"})
}
