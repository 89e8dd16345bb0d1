package models

// Program represents a named curriculum grouping.
type Program struct {
	ID      int64   `json:"id" db:"id"`
	Title   string  `json:"title" db:"title"`
	Summary *string `json:"summary,omitempty" db:"summary"`
}
