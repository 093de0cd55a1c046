package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/codegen"
	"github.com/tutorhub/tutorhub/internal/model"
)

// EnrollmentService runs the student→course approval state machine.
// At most one enrollment row exists per (student, course) pair.
type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseStore
	tutors      TutorStore
	students    StudentStore
	notifier    Notifier
	logger      *zap.Logger
}

func NewEnrollmentService(
	enrollments EnrollmentStore,
	courses CourseStore,
	tutors TutorStore,
	students StudentStore,
	notifier Notifier,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		tutors:      tutors,
		students:    students,
		notifier:    notifier,
		logger:      logger,
	}
}

// RequestJoin creates a pending enrollment for the student against the
// course behind the join code. The insert and the duplicate check are
// one conditional statement, so a second join attempt fails with
// ErrAlreadyEnrolled whatever the existing row's status.
func (s *EnrollmentService) RequestJoin(ctx context.Context, studentID uuid.UUID, courseCode string) (*model.Enrollment, error) {
	course, err := s.courses.GetByCode(ctx, codegen.Canonicalize(courseCode))
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, model.ErrCourseNotFound
	}

	enrollment := &model.Enrollment{
		StudentID:  studentID,
		CourseCode: course.Code,
		Status:     model.EnrollmentPending,
	}

	created, err := s.enrollments.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, model.ErrAlreadyEnrolled
	}

	s.logger.Info("Enrollment requested",
		zap.String("student_id", studentID.String()),
		zap.String("course_code", course.Code),
	)

	s.notify(ctx, course, studentID)

	return enrollment, nil
}

// Approve moves a pending enrollment on the tutor's own course to
// approved.
func (s *EnrollmentService) Approve(ctx context.Context, courseCode string, studentID, tutorID uuid.UUID) error {
	return s.decide(ctx, courseCode, studentID, tutorID, model.EnrollmentApproved)
}

// Reject moves a pending enrollment on the tutor's own course to
// rejected.
func (s *EnrollmentService) Reject(ctx context.Context, courseCode string, studentID, tutorID uuid.UUID) error {
	return s.decide(ctx, courseCode, studentID, tutorID, model.EnrollmentRejected)
}

func (s *EnrollmentService) decide(ctx context.Context, courseCode string, studentID, tutorID uuid.UUID, next model.EnrollmentStatus) error {
	if !model.EnrollmentPending.CanTransitionTo(next) {
		return model.ErrNotFound
	}

	ok, err := s.enrollments.UpdateStatusIfPending(ctx, codegen.Canonicalize(courseCode), studentID, tutorID, next)
	if err != nil {
		return err
	}
	if !ok {
		// Absent, already decided, or a course owned by someone else.
		return model.ErrNotFound
	}

	s.logger.Info("Enrollment decided",
		zap.String("student_id", studentID.String()),
		zap.String("course_code", codegen.Canonicalize(courseCode)),
		zap.String("status", string(next)),
	)

	return nil
}

// ListForCourse returns a course's enrollments for its owning tutor.
func (s *EnrollmentService) ListForCourse(ctx context.Context, courseCode string, tutorID uuid.UUID) ([]*model.Enrollment, error) {
	code := codegen.Canonicalize(courseCode)

	course, err := s.courses.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if course == nil || course.TutorID != tutorID {
		return nil, model.ErrNotFound
	}

	return s.enrollments.ListByCourse(ctx, code)
}

// ListForStudent returns the student's enrollments across courses.
func (s *EnrollmentService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Enrollment, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}

// notify pushes the request to the course owner. Lookup problems only
// cost the notification, never the enrollment.
func (s *EnrollmentService) notify(ctx context.Context, course *model.Course, studentID uuid.UUID) {
	tutor, err := s.tutors.GetByID(ctx, course.TutorID)
	if err != nil || tutor == nil {
		s.logger.Warn("Skipping enrollment notification",
			zap.String("course_code", course.Code),
			zap.Error(err),
		)
		return
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil || student == nil {
		s.logger.Warn("Skipping enrollment notification",
			zap.String("student_id", studentID.String()),
			zap.Error(err),
		)
		return
	}

	s.notifier.StudentRequestedEnrollment(ctx, tutor, student, course)
}
