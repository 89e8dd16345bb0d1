package dto

import "github.com/eyobt/schoolhub/internal/app/models"

// UserResponse represents account information as exposed by the API.
type UserResponse struct {
	ID         int64   `json:"id"`
	Username   string  `json:"username"`
	FullName   string  `json:"fullName"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      *string `json:"email,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Grade      *string `json:"grade,omitempty"`
	ParentID   *int64  `json:"parentId,omitempty"`
	Role       string  `json:"role" example:"Lecturer"`
	PictureURL string  `json:"pictureUrl"`

	IsStudent   bool `json:"isStudent"`
	IsLecturer  bool `json:"isLecturer"`
	IsParent    bool `json:"isParent"`
	IsDepHead   bool `json:"isDepHead"`
	IsSuperuser bool `json:"isSuperuser"`
}

// NewUserResponse maps a user model onto the API shape, resolving the display
// role and the picture URL against the uploads base URL.
func NewUserResponse(u *models.User, picturesBaseURL string) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Gender:      u.Gender,
		Phone:       u.Phone,
		Address:     u.Address,
		Grade:       u.Grade,
		ParentID:    u.ParentID,
		Role:        string(u.Role()),
		PictureURL:  u.PictureURL(picturesBaseURL),
		IsStudent:   u.IsStudent,
		IsLecturer:  u.IsLecturer,
		IsParent:    u.IsParent,
		IsDepHead:   u.IsDepHead,
		IsSuperuser: u.IsSuperuser,
	}
}

// UserListRequest represents account listing parameters.
type UserListRequest struct {
	Search string `form:"search"`
}

// UpdateProfileRequest represents profile update data.
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Gender    *string `json:"gender,omitempty" binding:"omitempty,oneof=M F"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}
