package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePicture(_ context.Context, userID int64, storedPath string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Picture = storedPath
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ string) ([]*models.User, error) {
	return r.sorted(func(*models.User) bool { return true }), nil
}

func (r *fakeUserRepo) Counts(_ context.Context) (models.UserCounts, error) {
	var counts models.UserCounts
	for _, u := range r.users {
		if u.IsStudent {
			counts.Students++
		}
		if u.IsLecturer {
			counts.Lecturers++
		}
		if u.IsSuperuser {
			counts.Superusers++
		}
	}
	return counts, nil
}

func (r *fakeUserRepo) ListStudentsByGrade(_ context.Context, grade string) ([]*models.User, error) {
	return r.sorted(func(u *models.User) bool {
		return u.IsStudent && u.Grade != nil && *u.Grade == grade
	}), nil
}

func (r *fakeUserRepo) ListLecturers(_ context.Context) ([]*models.User, error) {
	return r.sorted(func(u *models.User) bool { return u.IsLecturer }), nil
}

func (r *fakeUserRepo) WithTx(pgx.Tx) repositories.IUserRepository { return r }

func (r *fakeUserRepo) sorted(keep func(*models.User) bool) []*models.User {
	var users []*models.User
	for _, u := range r.users {
		if keep(u) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

type fakeStudentRepo struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[int64]*models.Student{}, nextID: 1}
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = r.nextID
	r.nextID++
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (r *fakeStudentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, s := range r.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) GenderCounts(_ context.Context) (models.GenderCounts, error) {
	return models.GenderCounts{}, nil
}

func (r *fakeStudentRepo) WithTx(pgx.Tx) repositories.IStudentRepository { return r }

type fakeParentRepo struct {
	parents    map[int64]*models.Parent
	nextID     int64
	failCreate bool
}

func newFakeParentRepo() *fakeParentRepo {
	return &fakeParentRepo{parents: map[int64]*models.Parent{}, nextID: 1}
}

func (r *fakeParentRepo) Create(_ context.Context, parent *models.Parent) error {
	if r.failCreate {
		return fmt.Errorf("simulated parent insert failure")
	}
	parent.ID = r.nextID
	r.nextID++
	r.parents[parent.ID] = parent
	return nil
}

func (r *fakeParentRepo) GetByUserID(_ context.Context, userID int64) (*models.Parent, error) {
	for _, p := range r.parents {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, apperrors.ErrParentNotFound
}

func (r *fakeParentRepo) WithTx(pgx.Tx) repositories.IParentRepository { return r }

type fakeDepHeadRepo struct {
	heads  map[int64]*models.DepartmentHead
	nextID int64
}

func newFakeDepHeadRepo() *fakeDepHeadRepo {
	return &fakeDepHeadRepo{heads: map[int64]*models.DepartmentHead{}, nextID: 1}
}

func (r *fakeDepHeadRepo) Create(_ context.Context, head *models.DepartmentHead) error {
	head.ID = r.nextID
	r.nextID++
	r.heads[head.ID] = head
	return nil
}

func (r *fakeDepHeadRepo) GetByUserID(_ context.Context, userID int64) (*models.DepartmentHead, error) {
	for _, h := range r.heads {
		if h.UserID == userID {
			return h, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (r *fakeDepHeadRepo) WithTx(pgx.Tx) repositories.IDepHeadRepository { return r }

type storedToken struct {
	userID     int64
	expiryDate time.Time
	revoked    bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*storedToken{}}
}

func (r *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	r.tokens[token] = &storedToken{userID: userID, expiryDate: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return 0, time.Time{}, false, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.expiryDate) {
		return 0, time.Time{}, false, apperrors.ErrTokenExpired
	}
	return stored.userID, stored.expiryDate, stored.revoked, nil
}

func (r *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	stored, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, stored := range r.tokens {
		if stored.userID == userID {
			stored.revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanupExpiredTokens(_ context.Context) (int64, error) {
	var deleted int64
	for token, stored := range r.tokens {
		if time.Now().After(stored.expiryDate) {
			delete(r.tokens, token)
			deleted++
		}
	}
	return deleted, nil
}

// activeTokens reports how many non-revoked tokens a user holds.
func (r *fakeTokenRepo) activeTokens(userID int64) int {
	n := 0
	for _, stored := range r.tokens {
		if stored.userID == userID && !stored.revoked {
			n++
		}
	}
	return n
}

// fakeTxRunner mimics transactional rollback over the in-memory fakes by
// snapshotting their state before the function runs and restoring it when the
// function returns an error.
type fakeTxRunner struct {
	users    *fakeUserRepo
	students *fakeStudentRepo
	parents  *fakeParentRepo
	depHeads *fakeDepHeadRepo
}

func (t *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	userSnap := make(map[int64]*models.User, len(t.users.users))
	for id, u := range t.users.users {
		userSnap[id] = u
	}
	studentSnap := make(map[int64]*models.Student, len(t.students.students))
	for id, s := range t.students.students {
		studentSnap[id] = s
	}
	parentSnap := make(map[int64]*models.Parent, len(t.parents.parents))
	for id, p := range t.parents.parents {
		parentSnap[id] = p
	}
	headSnap := make(map[int64]*models.DepartmentHead, len(t.depHeads.heads))
	for id, h := range t.depHeads.heads {
		headSnap[id] = h
	}

	if err := fn(ctx, nil); err != nil {
		t.users.users = userSnap
		t.students.students = studentSnap
		t.parents.parents = parentSnap
		t.depHeads.heads = headSnap
		return err
	}
	return nil
}

type attendanceKey struct {
	studentID int64
	date      time.Time
	period    int
}

type fakeAttendanceRepo struct {
	records map[attendanceKey]*models.Attendance
	nextID  int64
	failFor map[int64]bool // student IDs whose upserts fail
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: map[attendanceKey]*models.Attendance{},
		nextID:  1,
		failFor: map[int64]bool{},
	}
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, record *models.Attendance) error {
	if r.failFor[record.StudentID] {
		return fmt.Errorf("simulated upsert failure for student %d", record.StudentID)
	}
	key := attendanceKey{record.StudentID, record.Date, record.Period}
	if existing, ok := r.records[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = r.nextID
		r.nextID++
		record.CreatedAt = time.Now()
	}
	stored := *record
	r.records[key] = &stored
	return nil
}

func (r *fakeAttendanceRepo) GetSlot(_ context.Context, studentID int64, date time.Time, period int) (*models.Attendance, error) {
	record, ok := r.records[attendanceKey{studentID, date, period}]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return record, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, filter models.AttendanceFilter) ([]*models.Attendance, error) {
	var records []*models.Attendance
	for _, rec := range r.records {
		if filter.Grade != "" && rec.Grade != filter.Grade {
			continue
		}
		if filter.Period != 0 && rec.Period != filter.Period {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Date != nil && !rec.Date.Equal(*filter.Date) {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].Period < records[j].Period
	})
	return records, nil
}

type fakeCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[int64]*models.Course{}, nextID: 1}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	course.ID = r.nextID
	r.nextID++
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (r *fakeCourseRepo) List(_ context.Context, programID *int64) ([]*models.Course, error) {
	var courses []*models.Course
	for _, c := range r.courses {
		if programID != nil && c.ProgramID != *programID {
			continue
		}
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Title < courses[j].Title })
	return courses, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

type fakeAllocationRepo struct {
	courseIDs map[int64][]int64        // lecturer ID -> allocated course IDs
	courses   map[int64]*models.Course // course details, when a test needs them
	nextID    int64
}

func newFakeAllocationRepo() *fakeAllocationRepo {
	return &fakeAllocationRepo{
		courseIDs: map[int64][]int64{},
		courses:   map[int64]*models.Course{},
		nextID:    1,
	}
}

func (r *fakeAllocationRepo) Replace(_ context.Context, lecturerID int64, courseIDs []int64) error {
	r.courseIDs[lecturerID] = append([]int64(nil), courseIDs...)
	return nil
}

func (r *fakeAllocationRepo) GetByLecturerID(_ context.Context, lecturerID int64) (*models.CourseAllocation, error) {
	ids, ok := r.courseIDs[lecturerID]
	if !ok {
		return nil, apperrors.ErrAllocationNotFound
	}
	allocation := &models.CourseAllocation{ID: lecturerID, LecturerID: lecturerID}
	for _, id := range ids {
		if course, ok := r.courses[id]; ok {
			allocation.Courses = append(allocation.Courses, course)
			continue
		}
		allocation.Courses = append(allocation.Courses, &models.Course{ID: id})
	}
	return allocation, nil
}

func (r *fakeAllocationRepo) ListAll(_ context.Context) ([]*models.CourseAllocation, error) {
	var allocations []*models.CourseAllocation
	for lecturerID := range r.courseIDs {
		allocation, _ := r.GetByLecturerID(context.Background(), lecturerID)
		allocations = append(allocations, allocation)
	}
	sort.Slice(allocations, func(i, j int) bool { return allocations[i].LecturerID < allocations[j].LecturerID })
	return allocations, nil
}

func (r *fakeAllocationRepo) DeleteByLecturerID(_ context.Context, lecturerID int64) error {
	delete(r.courseIDs, lecturerID)
	return nil
}
