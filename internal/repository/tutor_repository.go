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

type TutorRepository struct {
	*base.Repository
}

func NewTutorRepository(pool *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a tutor. The code and email unique constraints are the
// arbiters against concurrent inserts: a code collision surfaces as
// model.ErrCodeTaken (caller regenerates), an email collision as
// model.ErrDuplicateEmail.
func (r *TutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	query := `
		INSERT INTO tutors (id, code, email, name, subject, bio, password_hash, telegram_chat_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		tutor.ID,
		tutor.Code,
		tutor.Email,
		tutor.Name,
		tutor.Subject,
		tutor.Bio,
		tutor.PasswordHash,
		tutor.TelegramChatID,
	).Scan(&tutor.CreatedAt)

	if err != nil {
		switch base.UniqueViolation(err) {
		case "tutors_code_key":
			return model.ErrCodeTaken
		case "tutors_email_key":
			return model.ErrDuplicateEmail
		}
		return fmt.Errorf("create tutor: %w", err)
	}

	return nil
}

// GetByID returns a tutor or nil if absent.
func (r *TutorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tutor, error) {
	query := `
		SELECT id, code, email, name, subject, bio, password_hash, telegram_chat_id, created_at, updated_at
		FROM tutors
		WHERE id = $1
	`

	tutor, err := r.scanOne(r.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get tutor by id: %w", err)
	}

	return tutor, nil
}

// GetByCode returns a tutor by shareable code or nil if absent.
// Codes are stored canonicalized, so the caller canonicalizes first.
func (r *TutorRepository) GetByCode(ctx context.Context, code string) (*model.Tutor, error) {
	query := `
		SELECT id, code, email, name, subject, bio, password_hash, telegram_chat_id, created_at, updated_at
		FROM tutors
		WHERE code = $1
	`

	tutor, err := r.scanOne(r.QueryRow(ctx, query, code))
	if err != nil {
		return nil, fmt.Errorf("get tutor by code: %w", err)
	}

	return tutor, nil
}

// GetByEmail returns a tutor by email or nil if absent.
func (r *TutorRepository) GetByEmail(ctx context.Context, email string) (*model.Tutor, error) {
	query := `
		SELECT id, code, email, name, subject, bio, password_hash, telegram_chat_id, created_at, updated_at
		FROM tutors
		WHERE email = $1
	`

	tutor, err := r.scanOne(r.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get tutor by email: %w", err)
	}

	return tutor, nil
}

// CodeExists probes the tutor-code namespace for a candidate.
func (r *TutorRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM tutors
			WHERE code = $1
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tutor code exists: %w", err)
	}

	return exists, nil
}

// Delete removes a tutor. Students keep their rows with tutor_id
// cleared (FK ON DELETE SET NULL); courses and their enrollments go
// with the tutor (FK ON DELETE CASCADE).
func (r *TutorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM tutors
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tutor: %w", err)
	}

	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *TutorRepository) scanOne(row pgx.Row) (*model.Tutor, error) {
	var tutor model.Tutor
	err := row.Scan(
		&tutor.ID,
		&tutor.Code,
		&tutor.Email,
		&tutor.Name,
		&tutor.Subject,
		&tutor.Bio,
		&tutor.PasswordHash,
		&tutor.TelegramChatID,
		&tutor.CreatedAt,
		&tutor.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &tutor, nil
}
