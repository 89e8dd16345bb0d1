package models

// DepartmentHead defines the department-head extension row based on the
// 'department_heads' table, linking an account to the program it leads.
type DepartmentHead struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"userId" db:"user_id"`
	ProgramID *int64 `json:"programId,omitempty" db:"program_id"`

	// Relations (populated when needed)
	User    *User    `json:"user,omitempty"`
	Program *Program `json:"program,omitempty"`
}
