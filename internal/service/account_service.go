package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/auth"
	"github.com/tutorhub/tutorhub/internal/codegen"
	"github.com/tutorhub/tutorhub/internal/model"
)

// How many insert attempts registration makes when the generated code
// loses the race against a concurrent insert. Each attempt draws a
// fresh code, so collisions here are about as likely as in the
// generator's own probe loop.
const maxCodeInsertAttempts = 5

// AccountService owns tutor and student identities: registration,
// tutor-code resolution and login.
type AccountService struct {
	tutors   TutorStore
	students StudentStore
	gen      *codegen.Generator
	creds    CredentialService
	notifier Notifier
	logger   *zap.Logger
}

func NewAccountService(
	tutors TutorStore,
	students StudentStore,
	gen *codegen.Generator,
	creds CredentialService,
	notifier Notifier,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		tutors:   tutors,
		students: students,
		gen:      gen,
		creds:    creds,
		notifier: notifier,
		logger:   logger,
	}
}

type RegisterTutorInput struct {
	Email          string
	Password       string
	Name           string
	Subject        string
	Bio            string
	TelegramChatID *int64
}

// RegisterTutor creates a tutor with a freshly allocated shareable
// code. The code unique constraint is the last word: if the insert
// loses a race for the code, a new one is drawn and the insert retried.
func (s *AccountService) RegisterTutor(ctx context.Context, input RegisterTutorInput) (*model.Tutor, error) {
	hash, err := s.creds.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	for attempt := 0; attempt < maxCodeInsertAttempts; attempt++ {
		code, err := s.gen.Generate(ctx, codegen.TutorCodes, s.tutors.CodeExists)
		if err != nil {
			return nil, fmt.Errorf("allocate tutor code: %w", err)
		}

		tutor := &model.Tutor{
			ID:             uuid.New(),
			Code:           code,
			Email:          strings.ToLower(strings.TrimSpace(input.Email)),
			Name:           input.Name,
			Subject:        input.Subject,
			Bio:            input.Bio,
			PasswordHash:   hash,
			TelegramChatID: input.TelegramChatID,
		}

		err = s.tutors.Create(ctx, tutor)
		if errors.Is(err, model.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("Tutor registered",
			zap.String("tutor_id", tutor.ID.String()),
			zap.String("code", tutor.Code),
		)

		return tutor, nil
	}

	return nil, fmt.Errorf("tutor-code: %w after %d insert attempts", codegen.ErrSpaceExhausted, maxCodeInsertAttempts)
}

// ResolveTutorByCode resolves a shareable code case-insensitively.
func (s *AccountService) ResolveTutorByCode(ctx context.Context, code string) (*model.Tutor, error) {
	code = codegen.Canonicalize(code)
	if !codegen.TutorCodes.Valid(code) {
		return nil, model.ErrUnknownTutorCode
	}

	tutor, err := s.tutors.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, model.ErrUnknownTutorCode
	}

	return tutor, nil
}

type RegisterStudentInput struct {
	Email      string
	Password   string
	Name       string
	GradeLevel int
	TutorCode  string
}

// RegisterStudent resolves the tutor code first — no student row is
// created for an unknown code — then creates the student in pending
// state bound to the resolved tutor. This is the entry point into the
// linkage workflow.
func (s *AccountService) RegisterStudent(ctx context.Context, input RegisterStudentInput) (*model.Student, error) {
	tutor, err := s.ResolveTutorByCode(ctx, input.TutorCode)
	if err != nil {
		return nil, err
	}

	hash, err := s.creds.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tutorID := tutor.ID
	student := &model.Student{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		GradeLevel:   input.GradeLevel,
		TutorID:      &tutorID,
		Status:       model.LinkagePending,
		PasswordHash: hash,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("Student registered",
		zap.String("student_id", student.ID.String()),
		zap.String("tutor_id", tutor.ID.String()),
	)

	s.notifier.StudentRequestedLinkage(ctx, tutor, student)

	return student, nil
}

// LoginTutor verifies credentials and issues a tutor token.
func (s *AccountService) LoginTutor(ctx context.Context, email, password string) (string, *model.Tutor, error) {
	tutor, err := s.tutors.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if tutor == nil || !s.creds.VerifyPassword(password, tutor.PasswordHash) {
		return "", nil, model.ErrInvalidCredentials
	}

	token, err := s.creds.IssueToken(tutor.ID, auth.RoleTutor)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, tutor, nil
}

// LoginStudent verifies credentials and issues a student token.
// A student whose linkage is not approved is refused with a
// status-specific error; the refusal reads state, it transitions
// nothing.
func (s *AccountService) LoginStudent(ctx context.Context, email, password string) (string, *model.Student, error) {
	student, err := s.students.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if student == nil || !s.creds.VerifyPassword(password, student.PasswordHash) {
		return "", nil, model.ErrInvalidCredentials
	}

	switch student.Status {
	case model.LinkageApproved:
	case model.LinkagePending:
		return "", nil, model.ErrLinkagePending
	default:
		return "", nil, model.ErrLinkageDeclined
	}

	token, err := s.creds.IssueToken(student.ID, auth.RoleStudent)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, student, nil
}

// DeleteTutor removes a tutor account. The schema does the bookkeeping:
// the tutor's courses and their enrollments are deleted, while student
// rows survive with tutor_id cleared.
func (s *AccountService) DeleteTutor(ctx context.Context, id uuid.UUID) error {
	if err := s.tutors.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Tutor deleted",
		zap.String("tutor_id", id.String()),
	)

	return nil
}

// GetTutor returns a tutor profile.
func (s *AccountService) GetTutor(ctx context.Context, id uuid.UUID) (*model.Tutor, error) {
	tutor, err := s.tutors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, model.ErrNotFound
	}
	return tutor, nil
}

// GetStudent returns a student profile.
func (s *AccountService) GetStudent(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, model.ErrNotFound
	}
	return student, nil
}
