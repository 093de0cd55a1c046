package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/codegen"
	"github.com/tutorhub/tutorhub/internal/model"
)

// CourseService owns courses. The course code doubles as the primary
// identifier and the join code; it shares the generator with tutor
// codes but lives in its own uniqueness namespace.
type CourseService struct {
	courses CourseStore
	gen     *codegen.Generator
	logger  *zap.Logger
}

func NewCourseService(courses CourseStore, gen *codegen.Generator, logger *zap.Logger) *CourseService {
	return &CourseService{courses: courses, gen: gen, logger: logger}
}

type CreateCourseInput struct {
	// Code is optional. When empty the server allocates one; a supplied
	// code is re-validated and re-checked for uniqueness before insert.
	Code        string
	Name        string
	Description string
	ImageURL    *string
}

// Create publishes a course for the tutor.
func (s *CourseService) Create(ctx context.Context, tutorID uuid.UUID, input CreateCourseInput) (*model.Course, error) {
	if input.Code != "" {
		return s.createWithCode(ctx, tutorID, input)
	}

	for attempt := 0; attempt < maxCodeInsertAttempts; attempt++ {
		code, err := s.gen.Generate(ctx, codegen.CourseCodes, s.courses.CodeExists)
		if err != nil {
			return nil, fmt.Errorf("allocate course code: %w", err)
		}

		course := s.build(tutorID, code, input)
		err = s.courses.Create(ctx, course)
		if errors.Is(err, model.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("Course created",
			zap.String("code", course.Code),
			zap.String("tutor_id", tutorID.String()),
		)

		return course, nil
	}

	return nil, fmt.Errorf("course-code: %w after %d insert attempts", codegen.ErrSpaceExhausted, maxCodeInsertAttempts)
}

// createWithCode is the caller-supplied-code edge case: canonicalize,
// validate against the namespace, and let the primary key keep the
// final word on uniqueness.
func (s *CourseService) createWithCode(ctx context.Context, tutorID uuid.UUID, input CreateCourseInput) (*model.Course, error) {
	code := codegen.Canonicalize(input.Code)
	if !codegen.CourseCodes.Valid(code) {
		return nil, model.ErrInvalidCourseCode
	}

	taken, err := s.courses.CodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrCodeTaken
	}

	course := s.build(tutorID, code, input)
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("Course created with supplied code",
		zap.String("code", course.Code),
		zap.String("tutor_id", tutorID.String()),
	)

	return course, nil
}

func (s *CourseService) build(tutorID uuid.UUID, code string, input CreateCourseInput) *model.Course {
	return &model.Course{
		Code:        code,
		TutorID:     tutorID,
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
}

// Update patches a course the tutor owns. A miss on either the code or
// the owner is the same ErrNotFound.
func (s *CourseService) Update(ctx context.Context, code string, tutorID uuid.UUID, patch model.CoursePatch) (*model.Course, error) {
	code = codegen.Canonicalize(code)

	ok, err := s.courses.Update(ctx, code, tutorID, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrNotFound
	}

	course, err := s.courses.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, model.ErrNotFound
	}

	return course, nil
}

// Delete removes a course the tutor owns together with its enrollments.
func (s *CourseService) Delete(ctx context.Context, code string, tutorID uuid.UUID) error {
	code = codegen.Canonicalize(code)

	ok, err := s.courses.Delete(ctx, code, tutorID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNotFound
	}

	s.logger.Info("Course deleted",
		zap.String("code", code),
		zap.String("tutor_id", tutorID.String()),
	)

	return nil
}

// GetByCode resolves a join code to a course.
func (s *CourseService) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	course, err := s.courses.GetByCode(ctx, codegen.Canonicalize(code))
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, model.ErrCourseNotFound
	}
	return course, nil
}

// ListByTutor returns the tutor's courses.
func (s *CourseService) ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Course, error) {
	return s.courses.ListByTutor(ctx, tutorID)
}
