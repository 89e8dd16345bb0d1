package services

import (
	"context"
	"fmt"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
)

// AllocationService handles lecturer course allocations
type AllocationService struct {
	allocationRepo repositories.IAllocationRepository
	userRepo       repositories.IUserRepository
	courseRepo     repositories.ICourseRepository
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(
	allocationRepo repositories.IAllocationRepository,
	userRepo repositories.IUserRepository,
	courseRepo repositories.ICourseRepository,
) *AllocationService {
	return &AllocationService{
		allocationRepo: allocationRepo,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
	}
}

// ReplaceAllocation assigns a lecturer the given course set, replacing any
// previous allocation in full. The target account must carry the lecturer
// flag and every course must exist.
func (s *AllocationService) ReplaceAllocation(ctx context.Context, lecturerID int64, courseIDs []int64) (*models.CourseAllocation, error) {
	lecturer, err := s.userRepo.GetByID(ctx, lecturerID)
	if err != nil {
		return nil, err
	}
	if !lecturer.IsLecturer {
		return nil, apperrors.ErrNotALecturer
	}

	for _, courseID := range courseIDs {
		if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
			return nil, fmt.Errorf("course %d: %w", courseID, err)
		}
	}

	if err := s.allocationRepo.Replace(ctx, lecturerID, courseIDs); err != nil {
		return nil, fmt.Errorf("error replacing allocation: %w", err)
	}

	return s.allocationRepo.GetByLecturerID(ctx, lecturerID)
}

// GetAllocation retrieves a lecturer's current allocation
func (s *AllocationService) GetAllocation(ctx context.Context, lecturerID int64) (*models.CourseAllocation, error) {
	return s.allocationRepo.GetByLecturerID(ctx, lecturerID)
}

// ListAllocations retrieves every lecturer allocation
func (s *AllocationService) ListAllocations(ctx context.Context) ([]*models.CourseAllocation, error) {
	return s.allocationRepo.ListAll(ctx)
}

// DeleteAllocation clears a lecturer's allocation
func (s *AllocationService) DeleteAllocation(ctx context.Context, lecturerID int64) error {
	if _, err := s.allocationRepo.GetByLecturerID(ctx, lecturerID); err != nil {
		return err
	}
	return s.allocationRepo.DeleteByLecturerID(ctx, lecturerID)
}
