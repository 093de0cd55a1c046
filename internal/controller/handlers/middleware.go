package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tutorhub/tutorhub/internal/auth"
)

const (
	localSubjectID = "subject_id"
	localRole      = "role"
)

// Authenticated parses the bearer token and stores the identity and
// role in the request context.
func (h *Handlers) Authenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		subject, role, err := h.creds.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		c.Locals(localSubjectID, subject)
		c.Locals(localRole, role)
		return c.Next()
	}
}

// RequireRole gates a route group to one role. Runs after Authenticated.
func (h *Handlers) RequireRole(role auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if got, ok := c.Locals(localRole).(auth.Role); !ok || got != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}
		return c.Next()
	}
}

// subjectID returns the authenticated identity set by Authenticated.
func subjectID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localSubjectID).(uuid.UUID)
	return id
}

// subjectRole returns the authenticated role set by Authenticated.
func subjectRole(c *fiber.Ctx) auth.Role {
	role, _ := c.Locals(localRole).(auth.Role)
	return role
}
