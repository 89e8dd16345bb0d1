package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole(t *testing.T) {
	tests := []struct {
		name string
		user User
		want Role
	}{
		{"no flags", User{}, RoleUser},
		{"student", User{IsStudent: true}, RoleStudent},
		{"lecturer", User{IsLecturer: true}, RoleLecturer},
		{"parent", User{IsParent: true}, RoleParent},
		{"department head", User{IsDepHead: true}, RoleDepHead},
		{"superuser", User{IsSuperuser: true}, RoleAdmin},
		{"superuser outranks student", User{IsSuperuser: true, IsStudent: true}, RoleAdmin},
		{"student outranks lecturer", User{IsStudent: true, IsLecturer: true}, RoleStudent},
		{"lecturer outranks dep head", User{IsLecturer: true, IsDepHead: true}, RoleLecturer},
		{"parent outranks dep head", User{IsParent: true, IsDepHead: true}, RoleParent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.Role())
		})
	}
}

func TestUserFullName(t *testing.T) {
	u := User{Username: "jdoe", FirstName: "John", LastName: "Doe"}
	assert.Equal(t, "John Doe", u.FullName())

	u.LastName = ""
	assert.Equal(t, "jdoe", u.FullName(), "missing last name falls back to username")

	u = User{Username: "jdoe"}
	assert.Equal(t, "jdoe", u.FullName())
}

func TestUserPictureURL(t *testing.T) {
	u := User{}
	assert.Equal(t, "http://localhost:8080/uploads/default.png", u.PictureURL("http://localhost:8080/uploads/"))

	u.Picture = "profile/abc.png"
	assert.Equal(t, "http://localhost:8080/uploads/profile/abc.png", u.PictureURL("http://localhost:8080/uploads"))
}

func TestHasDefaultPicture(t *testing.T) {
	assert.True(t, (&User{}).HasDefaultPicture())
	assert.True(t, (&User{Picture: DefaultPicture}).HasDefaultPicture())
	assert.False(t, (&User{Picture: "profile/abc.png"}).HasDefaultPicture())
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidGrade("1"))
	assert.True(t, ValidGrade("10"))
	assert.False(t, ValidGrade("11"))
	assert.False(t, ValidGrade(""))

	assert.True(t, ValidPeriod(1))
	assert.True(t, ValidPeriod(6))
	assert.False(t, ValidPeriod(0))
	assert.False(t, ValidPeriod(7))

	assert.True(t, ValidAttendanceStatus(StatusPresent))
	assert.True(t, ValidAttendanceStatus(StatusLate))
	assert.False(t, ValidAttendanceStatus("X"))
}
