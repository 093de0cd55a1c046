package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorhub/tutorhub/internal/model"
	"github.com/tutorhub/tutorhub/internal/service"
)

type createCourseRequest struct {
	Code        string  `json:"code" validate:"omitempty,max=16"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// CreateCourse publishes a course. The join code is server-generated
// unless the request supplies one.
func (h *Handlers) CreateCourse(c *fiber.Ctx) error {
	var req createCourseRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	course, err := h.courses.Create(c.Context(), subjectID(c), service.CreateCourseInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// ListCourses returns the tutor's courses.
func (h *Handlers) ListCourses(c *fiber.Ctx) error {
	courses, err := h.courses.ListByTutor(c.Context(), subjectID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"courses": courses})
}

type updateCourseRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// UpdateCourse patches a course the tutor owns.
func (h *Handlers) UpdateCourse(c *fiber.Ctx) error {
	var req updateCourseRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	course, err := h.courses.Update(c.Context(), c.Params("code"), subjectID(c), model.CoursePatch{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(course)
}

// DeleteCourse removes a course the tutor owns and cascades its
// enrollments.
func (h *Handlers) DeleteCourse(c *fiber.Ctx) error {
	if err := h.courses.Delete(c.Context(), c.Params("code"), subjectID(c)); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
