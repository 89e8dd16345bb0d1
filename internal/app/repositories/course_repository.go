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

// ICourseRepository defines the interface for course database operations.
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, programID *int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

const courseColumns = `id, program_id, title, code, grade, level, category, summary`

// CourseRepository handles course database operations.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(&course.ID, &course.ProgramID, &course.Title, &course.Code,
		&course.Grade, &course.Level, &course.Category, &course.Summary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error scanning course: %w", err)
	}
	return course, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (program_id, title, code, grade, level, category, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		course.ProgramID, course.Title, course.Code, course.Grade,
		course.Level, course.Category, course.Summary).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return scanCourse(r.db.QueryRow(ctx, `
		SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

// List retrieves courses ordered by grade then title, optionally restricted
// to one program. Grade labels are numeric strings, so ordering casts them.
func (r *CourseRepository) List(ctx context.Context, programID *int64) ([]*models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		ORDER BY grade::int, title`
	args := []interface{}{}
	if programID != nil {
		query = `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE program_id = $1
		ORDER BY grade::int, title`
		args = append(args, *programID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// Update persists course fields.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET program_id = $1, title = $2, code = $3, grade = $4, level = $5, category = $6, summary = $7
		WHERE id = $8`,
		course.ProgramID, course.Title, course.Code, course.Grade,
		course.Level, course.Category, course.Summary, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course. Attendance rows referencing it keep their record
// with the course reference cleared.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
