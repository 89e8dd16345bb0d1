package models

// Role is the single display label resolved from an account's role flags.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleStudent  Role = "Student"
	RoleLecturer Role = "Lecturer"
	RoleParent   Role = "Parent"
	RoleDepHead  Role = "Department Head"
	RoleUser     Role = "User"
)

// Level represents the schooling stage of a student.
type Level string

const (
	LevelPrimary    Level = "Primary"
	LevelSecondary  Level = "Secondary"
	LevelHighSchool Level = "High School"
)

// Relationship describes how a parent account relates to a student.
type Relationship string

const (
	RelationshipFather      Relationship = "Father"
	RelationshipMother      Relationship = "Mother"
	RelationshipBrother     Relationship = "Brother"
	RelationshipSister      Relationship = "Sister"
	RelationshipGrandmother Relationship = "Grandmother"
	RelationshipGrandfather Relationship = "Grandfather"
	RelationshipOther       Relationship = "Other"
)

// AttendanceStatus is the per-slot attendance mark.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "P"
	StatusAbsent  AttendanceStatus = "A"
	StatusLate    AttendanceStatus = "L"
)

// ValidAttendanceStatus reports whether s is one of the accepted marks.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// Grades lists the grade labels attendance can be taken for.
var Grades = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

// ValidGrade reports whether grade is one of the school's grade labels.
func ValidGrade(grade string) bool {
	for _, g := range Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// Attendance periods run 1..6 within a school day.
const (
	MinPeriod = 1
	MaxPeriod = 6
)

// ValidPeriod reports whether period is within the school day.
func ValidPeriod(period int) bool {
	return period >= MinPeriod && period <= MaxPeriod
}
