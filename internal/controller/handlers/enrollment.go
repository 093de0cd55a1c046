package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type joinCourseRequest struct {
	CourseCode string `json:"course_code" validate:"required"`
}

// JoinCourse requests enrollment into the course behind the join code.
func (h *Handlers) JoinCourse(c *fiber.Ctx) error {
	var req joinCourseRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	enrollment, err := h.enrollments.RequestJoin(c.Context(), subjectID(c), req.CourseCode)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

// ListStudentEnrollments returns the authenticated student's
// enrollments.
func (h *Handlers) ListStudentEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.enrollments.ListForStudent(c.Context(), subjectID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"enrollments": enrollments})
}

// ListCourseEnrollments returns a course's enrollments for its owner.
func (h *Handlers) ListCourseEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.enrollments.ListForCourse(c.Context(), c.Params("code"), subjectID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"enrollments": enrollments})
}

// ApproveEnrollment approves a pending enrollment on the tutor's course.
func (h *Handlers) ApproveEnrollment(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentID"))
	if err != nil {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "invalid student id"))
	}

	if err := h.enrollments.Approve(c.Context(), c.Params("code"), studentID, subjectID(c)); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "approved"})
}

// RejectEnrollment rejects a pending enrollment on the tutor's course.
func (h *Handlers) RejectEnrollment(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentID"))
	if err != nil {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "invalid student id"))
	}

	if err := h.enrollments.Reject(c.Context(), c.Params("code"), studentID, subjectID(c)); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "rejected"})
}
