package models

// Parent defines the parent extension row based on the 'parents' table.
// It links a parent account to at most one student; the link is cleared when
// the student is removed. Name and contact fields are denormalized copies
// kept for enrollment paperwork.
type Parent struct {
	ID           int64        `json:"id" db:"id"`
	UserID       int64        `json:"userId" db:"user_id"`
	StudentID    *int64       `json:"studentId,omitempty" db:"student_id"`
	FirstName    string       `json:"firstName" db:"first_name"`
	LastName     string       `json:"lastName" db:"last_name"`
	Phone        *string      `json:"phone,omitempty" db:"phone"`
	Email        *string      `json:"email,omitempty" db:"email"`
	Relationship Relationship `json:"relationship" db:"relationship"`

	// Relations (populated when needed)
	User    *User    `json:"user,omitempty"`
	Student *Student `json:"student,omitempty"`
}
