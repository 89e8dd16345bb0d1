package dto

// ReplaceAllocationRequest assigns a lecturer their full course set,
// replacing whatever was allocated before.
type ReplaceAllocationRequest struct {
	CourseIDs []int64 `json:"courseIds" binding:"required,min=1,dive,min=1"`
}

// AllocationResponse represents a lecturer's current allocation.
type AllocationResponse struct {
	LecturerID   int64        `json:"lecturerId"`
	Lecturer     UserResponse `json:"lecturer"`
	CourseIDs    []int64      `json:"courseIds"`
	CourseTitles []string     `json:"courseTitles,omitempty"`
}
