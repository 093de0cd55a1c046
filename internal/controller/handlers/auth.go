package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorhub/tutorhub/internal/auth"
	"github.com/tutorhub/tutorhub/internal/service"
)

type registerTutorRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"name" validate:"required,min=1,max=100"`
	Subject        string `json:"subject" validate:"required,min=1,max=100"`
	Bio            string `json:"bio" validate:"max=2000"`
	TelegramChatID *int64 `json:"telegram_chat_id"`
}

// RegisterTutor creates a tutor account and returns the profile with
// the freshly issued shareable code.
func (h *Handlers) RegisterTutor(c *fiber.Ctx) error {
	var req registerTutorRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	tutor, err := h.accounts.RegisterTutor(c.Context(), service.RegisterTutorInput{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Subject:        req.Subject,
		Bio:            req.Bio,
		TelegramChatID: req.TelegramChatID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tutor)
}

type registerStudentRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	GradeLevel int    `json:"grade_level" validate:"required,min=1,max=13"`
	TutorCode  string `json:"tutor_code" validate:"required"`
}

// RegisterStudent creates a student account bound to the tutor behind
// the submitted code; the student starts pending.
func (h *Handlers) RegisterStudent(c *fiber.Ctx) error {
	var req registerStudentRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	student, err := h.accounts.RegisterStudent(c.Context(), service.RegisterStudentInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
		TutorCode:  req.TutorCode,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginTutor issues a tutor session token.
func (h *Handlers) LoginTutor(c *fiber.Ctx) error {
	var req loginRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	token, tutor, err := h.accounts.LoginTutor(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"token": token, "tutor": tutor})
}

// LoginStudent issues a student session token. Students whose linkage
// is not approved are refused with a status-specific message.
func (h *Handlers) LoginStudent(c *fiber.Ctx) error {
	var req loginRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	token, student, err := h.accounts.LoginStudent(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"token": token, "student": student})
}

// DeleteAccount removes the authenticated tutor. Linked students keep
// their accounts without the tutor reference; the tutor's courses go
// away with them.
func (h *Handlers) DeleteAccount(c *fiber.Ctx) error {
	if err := h.accounts.DeleteTutor(c.Context(), subjectID(c)); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the authenticated profile for either role.
func (h *Handlers) Me(c *fiber.Ctx) error {
	switch subjectRole(c) {
	case auth.RoleTutor:
		tutor, err := h.accounts.GetTutor(c.Context(), subjectID(c))
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(fiber.Map{"tutor": tutor})
	default:
		student, err := h.accounts.GetStudent(c.Context(), subjectID(c))
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(fiber.Map{"student": student})
	}
}
