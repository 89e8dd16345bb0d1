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

// IProgramRepository defines the interface for program database operations.
type IProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id int64) (*models.Program, error)
	GetAll(ctx context.Context) ([]*models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id int64) error
}

// ProgramRepository handles program database operations.
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Create inserts a new program.
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO programs (title, summary)
		VALUES ($1, $2)
		RETURNING id`,
		program.Title, program.Summary).Scan(&program.ID)
	if err != nil {
		return fmt.Errorf("error creating program: %w", err)
	}
	return nil
}

// GetByID retrieves a program by ID.
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	program := &models.Program{}
	err := r.db.QueryRow(ctx, `
		SELECT id, title, summary FROM programs WHERE id = $1`, id).
		Scan(&program.ID, &program.Title, &program.Summary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error scanning program: %w", err)
	}
	return program, nil
}

// GetAll retrieves all programs ordered by title.
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.Program, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, summary FROM programs ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("error listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		program := &models.Program{}
		if err := rows.Scan(&program.ID, &program.Title, &program.Summary); err != nil {
			return nil, fmt.Errorf("error scanning program: %w", err)
		}
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating programs: %w", err)
	}
	return programs, nil
}

// Update persists program fields.
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE programs SET title = $1, summary = $2 WHERE id = $3`,
		program.Title, program.Summary, program.ID)
	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// Delete removes a program. Courses under the program go with it.
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}
