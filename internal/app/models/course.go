package models

// Course represents a subject taught within a program. The code is expected
// to be unique in practice, though the storage layer does not enforce it.
type Course struct {
	ID        int64   `json:"id" db:"id"`
	ProgramID int64   `json:"programId" db:"program_id"`
	Title     string  `json:"title" db:"title"`
	Code      string  `json:"code" db:"code"`
	Grade     string  `json:"grade" db:"grade"`
	Level     *Level  `json:"level,omitempty" db:"level"`
	Category  *string `json:"category,omitempty" db:"category"`
	Summary   *string `json:"summary,omitempty" db:"summary"`

	// Relations (populated when needed)
	Program *Program `json:"program,omitempty"`
}

// CourseAllocation associates a lecturer account with the set of courses
// assigned to them. Saving an allocation replaces the full set.
type CourseAllocation struct {
	ID         int64 `json:"id" db:"id"`
	LecturerID int64 `json:"lecturerId" db:"lecturer_id"`

	// Relations (populated when needed)
	Lecturer *User     `json:"lecturer,omitempty"`
	Courses  []*Course `json:"courses,omitempty"`
}
