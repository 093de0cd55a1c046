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

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a student in pending state. An email collision
// surfaces as model.ErrDuplicateEmail, whatever the existing row's
// linkage status.
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (id, email, name, grade_level, tutor_id, status, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		student.ID,
		student.Email,
		student.Name,
		student.GradeLevel,
		student.TutorID,
		student.Status,
		student.PasswordHash,
	).Scan(&student.CreatedAt)

	if err != nil {
		if base.UniqueViolation(err) == "students_email_key" {
			return model.ErrDuplicateEmail
		}
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID returns a student or nil if absent.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	query := `
		SELECT id, email, name, grade_level, tutor_id, status, password_hash, created_at, updated_at
		FROM students
		WHERE id = $1
	`

	student, err := r.scanOne(r.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return student, nil
}

// GetByEmail returns a student by email or nil if absent.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	query := `
		SELECT id, email, name, grade_level, tutor_id, status, password_hash, created_at, updated_at
		FROM students
		WHERE email = $1
	`

	student, err := r.scanOne(r.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get student by email: %w", err)
	}

	return student, nil
}

// ListPendingByTutor returns the tutor's students still waiting for a
// decision, oldest request first.
func (r *StudentRepository) ListPendingByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Student, error) {
	query := `
		SELECT id, email, name, grade_level, tutor_id, status, password_hash, created_at, updated_at
		FROM students
		WHERE tutor_id = $1 AND status = $2
		ORDER BY created_at ASC
	`

	rows, err := r.Query(ctx, query, tutorID, model.LinkagePending)
	if err != nil {
		return nil, fmt.Errorf("list pending students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		var student model.Student
		err := rows.Scan(
			&student.ID,
			&student.Email,
			&student.Name,
			&student.GradeLevel,
			&student.TutorID,
			&student.Status,
			&student.PasswordHash,
			&student.CreatedAt,
			&student.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// UpdateStatusIfPending moves a student out of pending, but only when
// the row is still pending and belongs to the given tutor. Both
// preconditions live in the WHERE clause so two concurrent decisions
// cannot both succeed; the loser sees false.
func (r *StudentRepository) UpdateStatusIfPending(ctx context.Context, studentID, tutorID uuid.UUID, next model.LinkageStatus) (bool, error) {
	query := `
		UPDATE students
		SET status = $1, updated_at = now()
		WHERE id = $2 AND tutor_id = $3 AND status = $4
	`

	affected, err := r.ExecAffected(ctx, query, next, studentID, tutorID, model.LinkagePending)
	if err != nil {
		return false, fmt.Errorf("update student status: %w", err)
	}

	return affected > 0, nil
}

func (r *StudentRepository) scanOne(row pgx.Row) (*model.Student, error) {
	var student model.Student
	err := row.Scan(
		&student.ID,
		&student.Email,
		&student.Name,
		&student.GradeLevel,
		&student.TutorID,
		&student.Status,
		&student.PasswordHash,
		&student.CreatedAt,
		&student.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &student, nil
}
