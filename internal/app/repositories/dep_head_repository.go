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

// IDepHeadRepository defines the interface for department-head extension rows.
type IDepHeadRepository interface {
	Create(ctx context.Context, head *models.DepartmentHead) error
	GetByUserID(ctx context.Context, userID int64) (*models.DepartmentHead, error)
	WithTx(tx pgx.Tx) IDepHeadRepository
}

// DepHeadRepository handles department-head extension database operations.
type DepHeadRepository struct {
	db querier
}

// NewDepHeadRepository creates a new DepHeadRepository
func NewDepHeadRepository(db *pgxpool.Pool) *DepHeadRepository {
	return &DepHeadRepository{db: db}
}

// WithTx returns a copy of the repository that issues its queries through tx.
func (r *DepHeadRepository) WithTx(tx pgx.Tx) IDepHeadRepository {
	return &DepHeadRepository{db: tx}
}

// Create inserts a department-head extension row.
func (r *DepHeadRepository) Create(ctx context.Context, head *models.DepartmentHead) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO department_heads (user_id, program_id)
		VALUES ($1, $2)
		RETURNING id`,
		head.UserID, head.ProgramID).Scan(&head.ID)
	if err != nil {
		return fmt.Errorf("error creating department head: %w", err)
	}
	return nil
}

// GetByUserID retrieves the department-head extension of an account.
func (r *DepHeadRepository) GetByUserID(ctx context.Context, userID int64) (*models.DepartmentHead, error) {
	head := &models.DepartmentHead{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, program_id
		FROM department_heads
		WHERE user_id = $1`, userID).Scan(&head.ID, &head.UserID, &head.ProgramID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning department head: %w", err)
	}
	return head, nil
}
