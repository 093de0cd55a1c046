package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/tutorhub/tutorhub/internal/auth"
	"github.com/tutorhub/tutorhub/internal/model"
)

// The workflow services talk to the store through these interfaces.
// The pgx repositories satisfy them in production; tests inject
// in-memory implementations.

type TutorStore interface {
	Create(ctx context.Context, tutor *model.Tutor) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tutor, error)
	GetByCode(ctx context.Context, code string) (*model.Tutor, error)
	GetByEmail(ctx context.Context, email string) (*model.Tutor, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StudentStore interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	ListPendingByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Student, error)
	UpdateStatusIfPending(ctx context.Context, studentID, tutorID uuid.UUID, next model.LinkageStatus) (bool, error)
}

type CourseStore interface {
	Create(ctx context.Context, course *model.Course) error
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Course, error)
	Update(ctx context.Context, code string, tutorID uuid.UUID, patch model.CoursePatch) (bool, error)
	Delete(ctx context.Context, code string, tutorID uuid.UUID) (bool, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *model.Enrollment) (bool, error)
	UpdateStatusIfPending(ctx context.Context, courseCode string, studentID, tutorID uuid.UUID, next model.EnrollmentStatus) (bool, error)
	ListByCourse(ctx context.Context, courseCode string) ([]*model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Enrollment, error)
}

// CredentialService is the external auth collaborator contract.
type CredentialService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	IssueToken(subject uuid.UUID, role auth.Role) (string, error)
}

// Notifier pushes request events to tutors out of band. Implementations
// must never fail the workflow; delivery problems are theirs to log.
type Notifier interface {
	StudentRequestedLinkage(ctx context.Context, tutor *model.Tutor, student *model.Student)
	StudentRequestedEnrollment(ctx context.Context, tutor *model.Tutor, student *model.Student, course *model.Course)
}

// NopNotifier is used when no notification channel is configured.
type NopNotifier struct{}

func (NopNotifier) StudentRequestedLinkage(context.Context, *model.Tutor, *model.Student) {}
func (NopNotifier) StudentRequestedEnrollment(context.Context, *model.Tutor, *model.Student, *model.Course) {
}
