package dto

import "github.com/eyobt/schoolhub/internal/app/models"

// CreateProgramRequest represents program creation data.
type CreateProgramRequest struct {
	Title   string  `json:"title" binding:"required"`
	Summary *string `json:"summary,omitempty"`
}

// UpdateProgramRequest represents program update data.
type UpdateProgramRequest struct {
	Title   string  `json:"title" binding:"required"`
	Summary *string `json:"summary,omitempty"`
}

// CreateCourseRequest represents course creation data.
type CreateCourseRequest struct {
	ProgramID int64         `json:"programId" binding:"required,min=1"`
	Title     string        `json:"title" binding:"required"`
	Code      string        `json:"code" binding:"required"`
	Grade     string        `json:"grade" binding:"required"`
	Level     *models.Level `json:"level,omitempty" binding:"omitempty,oneof=Primary Secondary 'High School'"`
	Category  *string       `json:"category,omitempty"`
	Summary   *string       `json:"summary,omitempty"`
}

// UpdateCourseRequest represents course update data.
type UpdateCourseRequest struct {
	ProgramID int64         `json:"programId" binding:"required,min=1"`
	Title     string        `json:"title" binding:"required"`
	Code      string        `json:"code" binding:"required"`
	Grade     string        `json:"grade" binding:"required"`
	Level     *models.Level `json:"level,omitempty" binding:"omitempty,oneof=Primary Secondary 'High School'"`
	Category  *string       `json:"category,omitempty"`
	Summary   *string       `json:"summary,omitempty"`
}

// CourseListRequest represents course listing parameters.
type CourseListRequest struct {
	ProgramID *int64 `form:"programId"`
}
