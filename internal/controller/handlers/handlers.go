// Package handlers is the HTTP route layer: request decoding and
// validation, the JWT gate, and the mapping from workflow errors to
// HTTP statuses. All business rules live in the services.
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/auth"
	"github.com/tutorhub/tutorhub/internal/service"
)

type Handlers struct {
	accounts    *service.AccountService
	linkage     *service.LinkageService
	courses     *service.CourseService
	enrollments *service.EnrollmentService
	creds       *auth.Credentials
	validate    *validator.Validate
	logger      *zap.Logger
}

func New(
	accounts *service.AccountService,
	linkage *service.LinkageService,
	courses *service.CourseService,
	enrollments *service.EnrollmentService,
	creds *auth.Credentials,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		accounts:    accounts,
		linkage:     linkage,
		courses:     courses,
		enrollments: enrollments,
		creds:       creds,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Register mounts all routes on the app.
func (h *Handlers) Register(app *fiber.App) {
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/tutors/register", h.RegisterTutor)
	authGroup.Post("/tutors/login", h.LoginTutor)
	authGroup.Post("/students/register", h.RegisterStudent)
	authGroup.Post("/students/login", h.LoginStudent)

	api.Get("/me", h.Authenticated(), h.Me)

	tutor := api.Group("/tutor", h.Authenticated(), h.RequireRole(auth.RoleTutor))
	tutor.Delete("/me", h.DeleteAccount)
	tutor.Get("/students/pending", h.ListPendingStudents)
	tutor.Post("/students/:id/accept", h.AcceptStudent)
	tutor.Post("/students/:id/decline", h.DeclineStudent)
	tutor.Post("/courses", h.CreateCourse)
	tutor.Get("/courses", h.ListCourses)
	tutor.Patch("/courses/:code", h.UpdateCourse)
	tutor.Delete("/courses/:code", h.DeleteCourse)
	tutor.Get("/courses/:code/enrollments", h.ListCourseEnrollments)
	tutor.Post("/courses/:code/enrollments/:studentID/approve", h.ApproveEnrollment)
	tutor.Post("/courses/:code/enrollments/:studentID/reject", h.RejectEnrollment)

	student := api.Group("/student", h.Authenticated(), h.RequireRole(auth.RoleStudent))
	student.Post("/enrollments", h.JoinCourse)
	student.Get("/enrollments", h.ListStudentEnrollments)
}

// parseBody decodes and validates a JSON request body.
func (h *Handlers) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
