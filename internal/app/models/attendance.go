package models

import "time"

// Attendance is one attendance slot: at most one row may exist per
// (student, date, period), enforced by a uniqueness constraint. Re-marking
// the same slot updates the existing row. Grade is denormalized from the
// student at marking time; course and marker are nullable so deleting either
// keeps the record.
type Attendance struct {
	ID        int64            `json:"id" db:"id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	Grade     string           `json:"grade" db:"grade"`
	CourseID  *int64           `json:"courseId,omitempty" db:"course_id"`
	Date      time.Time        `json:"date" db:"date"`
	Period    int              `json:"period" db:"period"`
	Status    AttendanceStatus `json:"status" db:"status"`
	MarkedBy  *int64           `json:"markedBy,omitempty" db:"marked_by"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *User   `json:"student,omitempty"`
	Course  *Course `json:"course,omitempty"`
	Marker  *User   `json:"marker,omitempty"`
}

// AttendanceFilter narrows attendance listings. Zero values mean "any".
type AttendanceFilter struct {
	Grade    string
	Date     *time.Time
	Period   int
	Status   AttendanceStatus
	CourseID *int64
}
