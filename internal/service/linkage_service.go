package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/model"
)

// LinkageService runs the student→tutor approval state machine.
// Transitions are tutor-initiated only; students never move their own
// status.
type LinkageService struct {
	students StudentStore
	logger   *zap.Logger
}

func NewLinkageService(students StudentStore, logger *zap.Logger) *LinkageService {
	return &LinkageService{students: students, logger: logger}
}

// Accept moves a pending student of this tutor to approved.
// Absent, already-decided and foreign students all fail with the same
// ErrRequestNotFound so the caller cannot probe which it was.
func (s *LinkageService) Accept(ctx context.Context, studentID, tutorID uuid.UUID) error {
	return s.decide(ctx, studentID, tutorID, model.LinkageApproved)
}

// Decline moves a pending student of this tutor to declined.
func (s *LinkageService) Decline(ctx context.Context, studentID, tutorID uuid.UUID) error {
	return s.decide(ctx, studentID, tutorID, model.LinkageDeclined)
}

func (s *LinkageService) decide(ctx context.Context, studentID, tutorID uuid.UUID, next model.LinkageStatus) error {
	if !model.LinkagePending.CanTransitionTo(next) {
		return model.ErrRequestNotFound
	}

	ok, err := s.students.UpdateStatusIfPending(ctx, studentID, tutorID, next)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrRequestNotFound
	}

	s.logger.Info("Link request decided",
		zap.String("student_id", studentID.String()),
		zap.String("tutor_id", tutorID.String()),
		zap.String("status", string(next)),
	)

	return nil
}

// ListPending returns the tutor's undecided students.
func (s *LinkageService) ListPending(ctx context.Context, tutorID uuid.UUID) ([]*model.Student, error) {
	return s.students.ListPendingByTutor(ctx, tutorID)
}
