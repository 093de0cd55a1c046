package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorhub/tutorhub/internal/model"
	"github.com/tutorhub/tutorhub/internal/repository/base"
)

type EnrollmentRepository struct {
	*base.Repository
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a pending enrollment for the (student, course) pair.
// The existence check and the insert are one statement: ON CONFLICT on
// the pair's unique constraint swallows the insert when any row
// already exists, so the method reports (false, nil) and never
// duplicates, whatever the existing row's status.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) (bool, error) {
	query := `
		INSERT INTO enrollments (student_id, course_code, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, course_code) DO NOTHING
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		enrollment.StudentID,
		enrollment.CourseCode,
		enrollment.Status,
	).Scan(&enrollment.ID, &enrollment.CreatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			// Conflict: a row for the pair already exists.
			return false, nil
		}
		return false, fmt.Errorf("create enrollment: %w", err)
	}

	return true, nil
}

// UpdateStatusIfPending moves an enrollment out of pending. Ownership
// (the course belongs to the tutor) and the pending precondition both
// sit in the statement, so concurrent decisions resolve to one winner.
func (r *EnrollmentRepository) UpdateStatusIfPending(ctx context.Context, courseCode string, studentID, tutorID uuid.UUID, next model.EnrollmentStatus) (bool, error) {
	query := `
		UPDATE enrollments e
		SET status = $1, updated_at = now()
		FROM courses c
		WHERE e.course_code = c.code
		  AND e.course_code = $2
		  AND e.student_id = $3
		  AND c.tutor_id = $4
		  AND e.status = $5
	`

	affected, err := r.ExecAffected(ctx, query, next, courseCode, studentID, tutorID, model.EnrollmentPending)
	if err != nil {
		return false, fmt.Errorf("update enrollment status: %w", err)
	}

	return affected > 0, nil
}

// ListByCourse returns a course's enrollments with the student
// projection filled, oldest request first.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseCode string) ([]*model.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_code, e.status, e.created_at, e.updated_at,
		       s.id, s.email, s.name, s.grade_level, s.tutor_id, s.status, s.created_at
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE e.course_code = $1
		ORDER BY e.created_at ASC
	`

	rows, err := r.Query(ctx, query, courseCode)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by course: %w", err)
	}
	defer rows.Close()

	var enrollments []*model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		var s model.Student
		err := rows.Scan(
			&e.ID,
			&e.StudentID,
			&e.CourseCode,
			&e.Status,
			&e.CreatedAt,
			&e.UpdatedAt,
			&s.ID,
			&s.Email,
			&s.Name,
			&s.GradeLevel,
			&s.TutorID,
			&s.Status,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		e.Student = &s
		enrollments = append(enrollments, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}

	return enrollments, nil
}

// ListByStudent returns a student's enrollments with the course
// projection filled, newest first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_code, e.status, e.created_at, e.updated_at,
		       c.code, c.tutor_id, c.name, c.description, c.image_url, c.created_at
		FROM enrollments e
		JOIN courses c ON c.code = e.course_code
		WHERE e.student_id = $1
		ORDER BY e.created_at DESC
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by student: %w", err)
	}
	defer rows.Close()

	var enrollments []*model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		var c model.Course
		err := rows.Scan(
			&e.ID,
			&e.StudentID,
			&e.CourseCode,
			&e.Status,
			&e.CreatedAt,
			&e.UpdatedAt,
			&c.Code,
			&c.TutorID,
			&c.Name,
			&c.Description,
			&c.ImageURL,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		e.Course = &c
		enrollments = append(enrollments, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}

	return enrollments, nil
}
