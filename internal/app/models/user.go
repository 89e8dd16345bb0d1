package models

import (
	"strings"
	"time"
)

// DefaultPicture is the shared placeholder served when an account has no
// uploaded profile picture. It is never deleted from storage.
const DefaultPicture = "default.png"

// User defines the account model based on the 'users' table. Role flags are
// independent booleans: an account may carry several at once, so any
// role-dependent behavior must check the flags rather than the resolved label.
type User struct {
	ID        int64   `json:"id" db:"id" example:"1"`
	Username  string  `json:"username" db:"username" example:"jdoe"` // Login identifier, unique
	Password  string  `json:"-" db:"password"`                       // Bcrypt hash, excluded from JSON
	FirstName string  `json:"firstName" db:"first_name" example:"John"`
	LastName  string  `json:"lastName" db:"last_name" example:"Doe"`
	Email     *string `json:"email,omitempty" db:"email"`
	Gender    *string `json:"gender,omitempty" db:"gender" example:"M"`
	Phone     *string `json:"phone,omitempty" db:"phone"`
	Address   *string `json:"address,omitempty" db:"address"`
	Picture   string  `json:"picture" db:"picture"`                // Stored path, empty means placeholder
	Grade     *string `json:"grade,omitempty" db:"grade"`          // School grade "1".."10", students only
	ParentID  *int64  `json:"parentId,omitempty" db:"parent_id"`   // Owning parent account (nullable)

	IsStudent   bool `json:"isStudent" db:"is_student"`
	IsLecturer  bool `json:"isLecturer" db:"is_lecturer"`
	IsParent    bool `json:"isParent" db:"is_parent"`
	IsDepHead   bool `json:"isDepHead" db:"is_dep_head"`
	IsSuperuser bool `json:"isSuperuser" db:"is_superuser"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Role resolves the single display label for the account. When several flags
// are set the earliest role in the precedence order wins:
// Admin > Student > Lecturer > Parent > Department Head.
func (u *User) Role() Role {
	switch {
	case u.IsSuperuser:
		return RoleAdmin
	case u.IsStudent:
		return RoleStudent
	case u.IsLecturer:
		return RoleLecturer
	case u.IsParent:
		return RoleParent
	case u.IsDepHead:
		return RoleDepHead
	}
	return RoleUser
}

// FullName returns "first last" when both names are present, otherwise the
// login identifier.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// PictureURL resolves the accessible URL of the profile picture under baseURL,
// falling back to the shared placeholder when none is set.
func (u *User) PictureURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if u.Picture == "" {
		return base + "/" + DefaultPicture
	}
	return base + "/" + strings.TrimLeft(u.Picture, "/")
}

// HasDefaultPicture reports whether the account still uses the shared
// placeholder image.
func (u *User) HasDefaultPicture() bool {
	return u.Picture == "" || u.Picture == DefaultPicture
}

// UserCounts aggregates per-role account totals for the dashboard.
type UserCounts struct {
	Students   int64 `json:"students"`
	Lecturers  int64 `json:"lecturers"`
	Superusers int64 `json:"superusers"`
}
