package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
)

// IStudentRepository defines the interface for student extension rows.
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GenderCounts(ctx context.Context) (models.GenderCounts, error)
	WithTx(tx pgx.Tx) IStudentRepository
}

// StudentRepository handles student extension database operations.
type StudentRepository struct {
	db querier
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// WithTx returns a copy of the repository that issues its queries through tx.
func (r *StudentRepository) WithTx(tx pgx.Tx) IStudentRepository {
	return &StudentRepository{db: tx}
}

// Create inserts a student extension row.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (user_id, level, program_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		student.UserID, student.Level, student.ProgramID).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student extension by its own ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, user_id, level, program_id FROM students WHERE id = $1`, id))
}

// GetByUserID retrieves the student extension of an account.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, user_id, level, program_id FROM students WHERE user_id = $1`, userID))
}

func (r *StudentRepository) scanOne(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(&student.ID, &student.UserID, &student.Level, &student.ProgramID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return student, nil
}

// GenderCounts tallies students by the gender recorded on their account.
func (r *StudentRepository) GenderCounts(ctx context.Context) (models.GenderCounts, error) {
	var counts models.GenderCounts
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE u.gender = 'M'),
			COUNT(*) FILTER (WHERE u.gender = 'F')
		FROM students s
		JOIN users u ON u.id = s.user_id`).Scan(&counts.Male, &counts.Female)
	if err != nil {
		return models.GenderCounts{}, fmt.Errorf("error counting student genders: %w", err)
	}
	return counts, nil
}
