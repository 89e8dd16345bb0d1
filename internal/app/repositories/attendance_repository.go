package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
)

// IAttendanceRepository defines the interface for attendance rows.
type IAttendanceRepository interface {
	Upsert(ctx context.Context, record *models.Attendance) error
	GetSlot(ctx context.Context, studentID int64, date time.Time, period int) (*models.Attendance, error)
	List(ctx context.Context, filter models.AttendanceFilter) ([]*models.Attendance, error)
}

// AttendanceRepository handles attendance database operations.
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert writes one attendance slot. The (student_id, date, period)
// uniqueness constraint keys the operation: a first mark inserts the row,
// a re-mark overwrites grade, course, status and marker on the existing one.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance (student_id, grade, course_id, date, period, status, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id, date, period)
		DO UPDATE SET grade = EXCLUDED.grade, course_id = EXCLUDED.course_id,
			status = EXCLUDED.status, marked_by = EXCLUDED.marked_by
		RETURNING id, created_at`,
		record.StudentID, record.Grade, record.CourseID, record.Date,
		record.Period, record.Status, record.MarkedBy).
		Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("error upserting attendance: %w", err)
	}
	return nil
}

// GetSlot retrieves the attendance row for one (student, date, period).
func (r *AttendanceRepository) GetSlot(ctx context.Context, studentID int64, date time.Time, period int) (*models.Attendance, error) {
	record := &models.Attendance{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, grade, course_id, date, period, status, marked_by, created_at
		FROM attendance
		WHERE student_id = $1 AND date = $2 AND period = $3`,
		studentID, date, period).Scan(
		&record.ID, &record.StudentID, &record.Grade, &record.CourseID,
		&record.Date, &record.Period, &record.Status, &record.MarkedBy, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning attendance: %w", err)
	}
	return record, nil
}

// List retrieves attendance rows matching the filter, newest date first then
// by period, with the student account joined for display.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]*models.Attendance, error) {
	builder := r.sb.Select(
		"a.id", "a.student_id", "a.grade", "a.course_id", "a.date", "a.period",
		"a.status", "a.marked_by", "a.created_at",
		"u.username", "u.first_name", "u.last_name").
		From("attendance a").
		Join("users u ON u.id = a.student_id").
		OrderBy("a.date DESC", "a.period")

	if filter.Grade != "" {
		builder = builder.Where(squirrel.Eq{"a.grade": filter.Grade})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"a.date": *filter.Date})
	}
	if filter.Period != 0 {
		builder = builder.Where(squirrel.Eq{"a.period": filter.Period})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"a.status": filter.Status})
	}
	if filter.CourseID != nil {
		builder = builder.Where(squirrel.Eq{"a.course_id": *filter.CourseID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record := &models.Attendance{Student: &models.User{}}
		err := rows.Scan(
			&record.ID, &record.StudentID, &record.Grade, &record.CourseID,
			&record.Date, &record.Period, &record.Status, &record.MarkedBy, &record.CreatedAt,
			&record.Student.Username, &record.Student.FirstName, &record.Student.LastName)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		record.Student.ID = record.StudentID
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}
	return records, nil
}
