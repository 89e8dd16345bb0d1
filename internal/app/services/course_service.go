package services

import (
	"context"
	"fmt"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
)

// CourseService handles course catalog operations
type CourseService struct {
	courseRepo  repositories.ICourseRepository
	programRepo repositories.IProgramRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, programRepo repositories.IProgramRepository) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		programRepo: programRepo,
	}
}

// CreateCourse creates a new course under an existing program
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !models.ValidGrade(req.Grade) {
		return nil, apperrors.ErrInvalidGrade
	}
	if _, err := s.programRepo.GetByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}

	course := &models.Course{
		ProgramID: req.ProgramID,
		Title:     req.Title,
		Code:      req.Code,
		Grade:     req.Grade,
		Level:     req.Level,
		Category:  req.Category,
		Summary:   req.Summary,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses retrieves courses ordered by grade then title, optionally
// restricted to one program.
func (s *CourseService) ListCourses(ctx context.Context, programID *int64) ([]*models.Course, error) {
	return s.courseRepo.List(ctx, programID)
}

// UpdateCourse updates an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if !models.ValidGrade(req.Grade) {
		return nil, apperrors.ErrInvalidGrade
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.programRepo.GetByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}

	course.ProgramID = req.ProgramID
	course.Title = req.Title
	course.Code = req.Code
	course.Grade = req.Grade
	course.Level = req.Level
	course.Category = req.Category
	course.Summary = req.Summary

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return course, nil
}

// DeleteCourse deletes a course. Attendance rows referencing it keep their
// data with the course link cleared.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, id)
}
