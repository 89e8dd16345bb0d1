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

// IParentRepository defines the interface for parent extension rows.
type IParentRepository interface {
	Create(ctx context.Context, parent *models.Parent) error
	GetByUserID(ctx context.Context, userID int64) (*models.Parent, error)
	WithTx(tx pgx.Tx) IParentRepository
}

// ParentRepository handles parent extension database operations.
type ParentRepository struct {
	db querier
}

// NewParentRepository creates a new ParentRepository
func NewParentRepository(db *pgxpool.Pool) *ParentRepository {
	return &ParentRepository{db: db}
}

// WithTx returns a copy of the repository that issues its queries through tx.
func (r *ParentRepository) WithTx(tx pgx.Tx) IParentRepository {
	return &ParentRepository{db: tx}
}

// Create inserts a parent extension row.
func (r *ParentRepository) Create(ctx context.Context, parent *models.Parent) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO parents (user_id, student_id, first_name, last_name, phone, email, relationship)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		parent.UserID, parent.StudentID, parent.FirstName, parent.LastName,
		parent.Phone, parent.Email, parent.Relationship).Scan(&parent.ID)
	if err != nil {
		return fmt.Errorf("error creating parent: %w", err)
	}
	return nil
}

// GetByUserID retrieves the parent extension of an account.
func (r *ParentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Parent, error) {
	parent := &models.Parent{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, student_id, first_name, last_name, phone, email, relationship
		FROM parents
		WHERE user_id = $1`, userID).Scan(
		&parent.ID, &parent.UserID, &parent.StudentID, &parent.FirstName, &parent.LastName,
		&parent.Phone, &parent.Email, &parent.Relationship)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParentNotFound
		}
		return nil, fmt.Errorf("error scanning parent: %w", err)
	}
	return parent, nil
}
