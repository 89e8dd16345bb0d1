package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
	"github.com/eyobt/schoolhub/internal/pkg/dberrors"
)

// IUserRepository defines the interface for account database operations.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePicture(ctx context.Context, userID int64, storedPath string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, search string) ([]*models.User, error)
	Counts(ctx context.Context) (models.UserCounts, error)
	ListStudentsByGrade(ctx context.Context, grade string) ([]*models.User, error)
	ListLecturers(ctx context.Context) ([]*models.User, error)
	WithTx(tx pgx.Tx) IUserRepository
}

const userColumns = `id, username, password, first_name, last_name, email, gender, phone, address,
		picture, grade, parent_id, is_student, is_lecturer, is_parent, is_dep_head, is_superuser,
		created_at, updated_at`

// UserRepository handles account database operations.
type UserRepository struct {
	db querier
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository that issues its queries through tx.
func (r *UserRepository) WithTx(tx pgx.Tx) IUserRepository {
	return &UserRepository{db: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &user.FirstName, &user.LastName,
		&user.Email, &user.Gender, &user.Phone, &user.Address,
		&user.Picture, &user.Grade, &user.ParentID,
		&user.IsStudent, &user.IsLecturer, &user.IsParent, &user.IsDepHead, &user.IsSuperuser,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return user, nil
}

// Create inserts a new account and sets its generated ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, password, first_name, last_name, email, gender, phone, address,
			picture, grade, parent_id, is_student, is_lecturer, is_parent, is_dep_head, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Password, user.FirstName, user.LastName, user.Email,
		user.Gender, user.Phone, user.Address, user.Picture, user.Grade, user.ParentID,
		user.IsStudent, user.IsLecturer, user.IsParent, user.IsDepHead, user.IsSuperuser).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id))
}

// GetByUsername retrieves an account by its login identifier.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1`, username))
}

// UsernameExists checks if a username is already taken.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// Update persists profile fields, role flags and picture of an account.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, gender = $4, phone = $5, address = $6,
			picture = $7, grade = $8, parent_id = $9,
			is_student = $10, is_lecturer = $11, is_parent = $12, is_dep_head = $13, is_superuser = $14,
			updated_at = NOW()
		WHERE id = $15`,
		user.FirstName, user.LastName, user.Email, user.Gender, user.Phone, user.Address,
		user.Picture, user.Grade, user.ParentID,
		user.IsStudent, user.IsLecturer, user.IsParent, user.IsDepHead, user.IsSuperuser,
		user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePicture stores the picture path of an account.
func (r *UserRepository) UpdatePicture(ctx context.Context, userID int64, storedPath string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET picture = $1, updated_at = NOW() WHERE id = $2`,
		storedPath, userID)
	if err != nil {
		return fmt.Errorf("error updating picture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes an account. Extension rows (student, parent, department
// head) and attendance records go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// List retrieves accounts, optionally filtered by a substring match over
// username, first name, last name and email.
func (r *UserRepository) List(ctx context.Context, search string) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC`
	args := []interface{}{}
	if search != "" {
		query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		ORDER BY created_at DESC`
		args = append(args, "%"+search+"%")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Counts returns per-role account totals.
func (r *UserRepository) Counts(ctx context.Context) (models.UserCounts, error) {
	var counts models.UserCounts
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE is_student),
			COUNT(*) FILTER (WHERE is_lecturer),
			COUNT(*) FILTER (WHERE is_superuser)
		FROM users`).Scan(&counts.Students, &counts.Lecturers, &counts.Superusers)
	if err != nil {
		return models.UserCounts{}, fmt.Errorf("error counting users: %w", err)
	}
	return counts, nil
}

// ListStudentsByGrade retrieves the roster for a grade: accounts flagged as
// students with a matching grade, ordered by username.
func (r *UserRepository) ListStudentsByGrade(ctx context.Context, grade string) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE is_student AND grade = $1
		ORDER BY username`, grade)
	if err != nil {
		return nil, fmt.Errorf("error loading roster: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListLecturers retrieves all accounts flagged as lecturers, ordered by
// username.
func (r *UserRepository) ListLecturers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE is_lecturer
		ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("error listing lecturers: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
