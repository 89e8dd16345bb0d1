package models

// Student defines the student extension row based on the 'students' table.
// It extends a User one-to-one; deleting the Student deletes the underlying
// account as well.
type Student struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"userId" db:"user_id"`
	Level     *Level `json:"level,omitempty" db:"level"`
	ProgramID *int64 `json:"programId,omitempty" db:"program_id"`

	// Relations (populated when needed)
	User    *User    `json:"user,omitempty"`
	Program *Program `json:"program,omitempty"`
}

// GenderCounts tallies students by the gender recorded on their account.
type GenderCounts struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}
