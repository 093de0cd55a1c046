package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorhub/tutorhub/internal/model"
	"github.com/tutorhub/tutorhub/internal/repository/base"
)

type CourseRepository struct {
	*base.Repository
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a course. The code is the primary key, so a collision
// surfaces as model.ErrCodeTaken.
func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (code, tutor_id, name, description, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		course.Code,
		course.TutorID,
		course.Name,
		course.Description,
		course.ImageURL,
	).Scan(&course.CreatedAt)

	if err != nil {
		if base.UniqueViolation(err) == "courses_pkey" {
			return model.ErrCodeTaken
		}
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByCode returns a course or nil if absent.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	query := `
		SELECT code, tutor_id, name, description, image_url, created_at, updated_at
		FROM courses
		WHERE code = $1
	`

	course, err := r.scanOne(r.QueryRow(ctx, query, code))
	if err != nil {
		return nil, fmt.Errorf("get course by code: %w", err)
	}

	return course, nil
}

// ListByTutor returns the tutor's courses, newest first.
func (r *CourseRepository) ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Course, error) {
	query := `
		SELECT code, tutor_id, name, description, image_url, created_at, updated_at
		FROM courses
		WHERE tutor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("list courses by tutor: %w", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		var course model.Course
		err := rows.Scan(
			&course.Code,
			&course.TutorID,
			&course.Name,
			&course.Description,
			&course.ImageURL,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}

// Update applies a patch to a course the tutor owns. The ownership
// check sits in the WHERE clause; zero affected rows means absent or
// not owned, indistinguishably.
func (r *CourseRepository) Update(ctx context.Context, code string, tutorID uuid.UUID, patch model.CoursePatch) (bool, error) {
	query := `
		UPDATE courses
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    image_url = COALESCE($3, image_url),
		    updated_at = now()
		WHERE code = $4 AND tutor_id = $5
	`

	affected, err := r.ExecAffected(ctx, query, patch.Name, patch.Description, patch.ImageURL, code, tutorID)
	if err != nil {
		return false, fmt.Errorf("update course: %w", err)
	}

	return affected > 0, nil
}

// Delete removes a course the tutor owns. Enrollments go with it
// (FK ON DELETE CASCADE).
func (r *CourseRepository) Delete(ctx context.Context, code string, tutorID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM courses
		WHERE code = $1 AND tutor_id = $2
	`

	affected, err := r.ExecAffected(ctx, query, code, tutorID)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}

	return affected > 0, nil
}

// CodeExists probes the course-code namespace for a candidate.
func (r *CourseRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM courses
			WHERE code = $1
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check course code exists: %w", err)
	}

	return exists, nil
}

func (r *CourseRepository) scanOne(row pgx.Row) (*model.Course, error) {
	var course model.Course
	err := row.Scan(
		&course.Code,
		&course.TutorID,
		&course.Name,
		&course.Description,
		&course.ImageURL,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &course, nil
}
