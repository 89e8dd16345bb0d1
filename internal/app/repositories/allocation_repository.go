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

// IAllocationRepository defines the interface for course allocation rows.
type IAllocationRepository interface {
	Replace(ctx context.Context, lecturerID int64, courseIDs []int64) error
	GetByLecturerID(ctx context.Context, lecturerID int64) (*models.CourseAllocation, error)
	ListAll(ctx context.Context) ([]*models.CourseAllocation, error)
	DeleteByLecturerID(ctx context.Context, lecturerID int64) error
}

// AllocationRepository handles course allocation database operations.
type AllocationRepository struct {
	db *pgxpool.Pool
}

// NewAllocationRepository creates a new AllocationRepository
func NewAllocationRepository(db *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// Replace sets a lecturer's full course allocation in one transaction,
// discarding whatever was allocated before.
func (r *AllocationRepository) Replace(ctx context.Context, lecturerID int64, courseIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var allocationID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO course_allocations (lecturer_id)
		VALUES ($1)
		ON CONFLICT (lecturer_id) DO UPDATE SET lecturer_id = EXCLUDED.lecturer_id
		RETURNING id`, lecturerID).Scan(&allocationID)
	if err != nil {
		return fmt.Errorf("error upserting allocation: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM course_allocation_courses WHERE allocation_id = $1`, allocationID); err != nil {
		return fmt.Errorf("error clearing allocation courses: %w", err)
	}

	for _, courseID := range courseIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO course_allocation_courses (allocation_id, course_id)
			VALUES ($1, $2)`, allocationID, courseID); err != nil {
			return fmt.Errorf("error adding course %d to allocation: %w", courseID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByLecturerID retrieves a lecturer's allocation with its course set,
// ordered by grade then title.
func (r *AllocationRepository) GetByLecturerID(ctx context.Context, lecturerID int64) (*models.CourseAllocation, error) {
	allocation := &models.CourseAllocation{}
	err := r.db.QueryRow(ctx, `
		SELECT id, lecturer_id FROM course_allocations WHERE lecturer_id = $1`,
		lecturerID).Scan(&allocation.ID, &allocation.LecturerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("error scanning allocation: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.program_id, c.title, c.code, c.grade, c.level, c.category, c.summary
		FROM course_allocation_courses ac
		JOIN courses c ON c.id = ac.course_id
		WHERE ac.allocation_id = $1
		ORDER BY c.grade::int, c.title`, allocation.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading allocation courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		allocation.Courses = append(allocation.Courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation courses: %w", err)
	}
	return allocation, nil
}

// ListAll retrieves every allocation with its course set.
func (r *AllocationRepository) ListAll(ctx context.Context) ([]*models.CourseAllocation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT lecturer_id FROM course_allocations ORDER BY lecturer_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing allocations: %w", err)
	}

	var lecturerIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning allocation: %w", err)
		}
		lecturerIDs = append(lecturerIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	allocations := make([]*models.CourseAllocation, 0, len(lecturerIDs))
	for _, id := range lecturerIDs {
		allocation, err := r.GetByLecturerID(ctx, id)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, allocation)
	}
	return allocations, nil
}

// DeleteByLecturerID removes a lecturer's allocation and its course links.
func (r *AllocationRepository) DeleteByLecturerID(ctx context.Context, lecturerID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM course_allocations WHERE lecturer_id = $1`, lecturerID)
	if err != nil {
		return fmt.Errorf("error deleting allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAllocationNotFound
	}
	return nil
}
