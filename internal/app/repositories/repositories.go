package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx operations repositories issue. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so a repository can run against the
// pool or inside a caller-owned transaction via WithTx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all database repositories for dependency wiring.
type Repositories struct {
	UserRepository       *UserRepository
	StudentRepository    *StudentRepository
	ParentRepository     *ParentRepository
	DepHeadRepository    *DepHeadRepository
	ProgramRepository    *ProgramRepository
	CourseRepository     *CourseRepository
	AllocationRepository *AllocationRepository
	AttendanceRepository *AttendanceRepository
	TokenRepository      *TokenRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		StudentRepository:    NewStudentRepository(db),
		ParentRepository:     NewParentRepository(db),
		DepHeadRepository:    NewDepHeadRepository(db),
		ProgramRepository:    NewProgramRepository(db),
		CourseRepository:     NewCourseRepository(db),
		AllocationRepository: NewAllocationRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
