package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
)

type AllocationServiceSuite struct {
	suite.Suite
	userRepo       *fakeUserRepo
	courseRepo     *fakeCourseRepo
	allocationRepo *fakeAllocationRepo
	service        *AllocationService
	ctx            context.Context
}

func (s *AllocationServiceSuite) SetupTest() {
	s.userRepo = newFakeUserRepo()
	s.courseRepo = newFakeCourseRepo()
	s.allocationRepo = newFakeAllocationRepo()
	s.service = NewAllocationService(s.allocationRepo, s.userRepo, s.courseRepo)
	s.ctx = context.Background()
}

func (s *AllocationServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func TestAllocationServiceSuite(t *testing.T) {
	suite.Run(t, new(AllocationServiceSuite))
}

func (s *AllocationServiceSuite) addLecturer(username string) *models.User {
	user := &models.User{Username: username, IsLecturer: true}
	s.Require().NoError(s.userRepo.Create(s.ctx, user))
	return user
}

func (s *AllocationServiceSuite) addCourse(title string) *models.Course {
	course := &models.Course{ProgramID: 1, Title: title, Code: title, Grade: "5"}
	s.Require().NoError(s.courseRepo.Create(s.ctx, course))
	return course
}

func (s *AllocationServiceSuite) TestReplaceAllocation() {
	s.Run("assigns courses to a lecturer", func() {
		lecturer := s.addLecturer("wro-alem")
		math := s.addCourse("Mathematics")
		bio := s.addCourse("Biology")

		allocation, err := s.service.ReplaceAllocation(s.ctx, lecturer.ID, []int64{math.ID, bio.ID})
		s.Require().NoError(err)
		s.Equal(lecturer.ID, allocation.LecturerID)
		s.Len(allocation.Courses, 2)
	})

	s.Run("replaces the previous set in full", func() {
		lecturer := s.addLecturer("wro-alem")
		math := s.addCourse("Mathematics")
		bio := s.addCourse("Biology")

		_, err := s.service.ReplaceAllocation(s.ctx, lecturer.ID, []int64{math.ID, bio.ID})
		s.Require().NoError(err)

		allocation, err := s.service.ReplaceAllocation(s.ctx, lecturer.ID, []int64{bio.ID})
		s.Require().NoError(err)
		s.Require().Len(allocation.Courses, 1)
		s.Equal(bio.ID, allocation.Courses[0].ID)
	})

	s.Run("rejects an account without the lecturer flag", func() {
		user := &models.User{Username: "student-1", IsStudent: true}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))
		math := s.addCourse("Mathematics")

		_, err := s.service.ReplaceAllocation(s.ctx, user.ID, []int64{math.ID})
		s.Require().ErrorIs(err, apperrors.ErrNotALecturer)
	})

	s.Run("rejects unknown courses", func() {
		lecturer := s.addLecturer("wro-alem")

		_, err := s.service.ReplaceAllocation(s.ctx, lecturer.ID, []int64{424242})
		s.Require().ErrorIs(err, apperrors.ErrCourseNotFound)
	})

	s.Run("rejects unknown lecturers", func() {
		_, err := s.service.ReplaceAllocation(s.ctx, 424242, []int64{1})
		s.Require().ErrorIs(err, apperrors.ErrUserNotFound)
	})
}

func (s *AllocationServiceSuite) TestGetAndDelete() {
	s.Run("returns ErrAllocationNotFound for an unallocated lecturer", func() {
		lecturer := s.addLecturer("wro-alem")
		_, err := s.service.GetAllocation(s.ctx, lecturer.ID)
		s.Require().ErrorIs(err, apperrors.ErrAllocationNotFound)
	})

	s.Run("delete clears the allocation", func() {
		lecturer := s.addLecturer("wro-alem")
		math := s.addCourse("Mathematics")

		_, err := s.service.ReplaceAllocation(s.ctx, lecturer.ID, []int64{math.ID})
		s.Require().NoError(err)

		s.Require().NoError(s.service.DeleteAllocation(s.ctx, lecturer.ID))

		_, err = s.service.GetAllocation(s.ctx, lecturer.ID)
		s.Require().ErrorIs(err, apperrors.ErrAllocationNotFound)
	})
}
