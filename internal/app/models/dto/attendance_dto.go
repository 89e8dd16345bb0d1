package dto

import (
	"time"

	"github.com/eyobt/schoolhub/internal/app/models"
)

// RosterRequest represents roster load parameters for a grade and period.
type RosterRequest struct {
	Grade  string `form:"grade" binding:"required"`
	Period int    `form:"period" binding:"required"`
}

// RosterResponse is the ordered set of students attendance can be marked for.
type RosterResponse struct {
	Grade    string         `json:"grade"`
	Period   int            `json:"period"`
	Students []UserResponse `json:"students"`
}

// SaveAttendanceRequest represents a batch of per-student marks for today.
// Marks are keyed by student account ID; unknown IDs are skipped.
type SaveAttendanceRequest struct {
	Grade    string                            `json:"grade" binding:"required"`
	Period   int                               `json:"period" binding:"required"`
	CourseID *int64                            `json:"courseId,omitempty"`
	Marks    map[int64]models.AttendanceStatus `json:"marks" binding:"required"`
}

// SaveAttendanceResponse confirms the date the marks were recorded for.
type SaveAttendanceResponse struct {
	Date string `json:"date" example:"2026-09-01"`
}

// AttendanceListRequest represents attendance listing filters.
type AttendanceListRequest struct {
	Grade  string `form:"grade"`
	Date   string `form:"date"` // YYYY-MM-DD
	Period int    `form:"period"`
	Status string `form:"status"`
}

// AttendanceRecordResponse represents one stored attendance row.
type AttendanceRecordResponse struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	StudentName string    `json:"studentName,omitempty"`
	Grade       string    `json:"grade"`
	CourseID    *int64    `json:"courseId,omitempty"`
	Date        string    `json:"date"`
	Period      int       `json:"period"`
	Status      string    `json:"status"`
	MarkedBy    *int64    `json:"markedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewAttendanceRecordResponse maps an attendance model onto the API shape.
func NewAttendanceRecordResponse(a *models.Attendance) AttendanceRecordResponse {
	resp := AttendanceRecordResponse{
		ID:        a.ID,
		StudentID: a.StudentID,
		Grade:     a.Grade,
		CourseID:  a.CourseID,
		Date:      a.Date.Format("2006-01-02"),
		Period:    a.Period,
		Status:    string(a.Status),
		MarkedBy:  a.MarkedBy,
		CreatedAt: a.CreatedAt,
	}
	if a.Student != nil {
		resp.StudentName = a.Student.FullName()
	}
	return resp
}
