package dto

import "github.com/eyobt/schoolhub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents an account registration request. Role flags are
// independent; the optional extension blocks are honored only when the
// matching flag is set.
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=60"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Gender    *string `json:"gender,omitempty" binding:"omitempty,oneof=M F"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	Grade     *string `json:"grade,omitempty"`
	ParentID  *int64  `json:"parentId,omitempty"`

	IsStudent   bool `json:"isStudent"`
	IsLecturer  bool `json:"isLecturer"`
	IsParent    bool `json:"isParent"`
	IsDepHead   bool `json:"isDepHead"`
	IsSuperuser bool `json:"isSuperuser"`

	Student *StudentExtension `json:"student,omitempty"`
	Parent  *ParentExtension  `json:"parent,omitempty"`
	DepHead *DepHeadExtension `json:"depHead,omitempty"`
}

// StudentExtension carries the student one-to-one row fields.
type StudentExtension struct {
	Level     *models.Level `json:"level,omitempty" binding:"omitempty,oneof=Primary Secondary 'High School'"`
	ProgramID *int64        `json:"programId,omitempty"`
}

// ParentExtension carries the parent one-to-one row fields.
type ParentExtension struct {
	StudentID    *int64              `json:"studentId,omitempty"`
	FirstName    string              `json:"firstName" binding:"required"`
	LastName     string              `json:"lastName" binding:"required"`
	Phone        *string             `json:"phone,omitempty"`
	Email        *string             `json:"email,omitempty" binding:"omitempty,email"`
	Relationship models.Relationship `json:"relationship" binding:"required,oneof=Father Mother Brother Sister Grandmother Grandfather Other"`
}

// DepHeadExtension carries the department-head one-to-one row fields.
type DepHeadExtension struct {
	ProgramID *int64 `json:"programId,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
