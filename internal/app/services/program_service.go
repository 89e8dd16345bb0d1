package services

import (
	"context"
	"fmt"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/app/repositories"
)

// ProgramService handles program catalog operations
type ProgramService struct {
	programRepo repositories.IProgramRepository
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo repositories.IProgramRepository) *ProgramService {
	return &ProgramService{programRepo: programRepo}
}

// CreateProgram creates a new program
func (s *ProgramService) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*models.Program, error) {
	program := &models.Program{
		Title:   req.Title,
		Summary: req.Summary,
	}
	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, fmt.Errorf("error creating program: %w", err)
	}
	return program, nil
}

// GetProgramByID retrieves a program by ID
func (s *ProgramService) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	return s.programRepo.GetByID(ctx, id)
}

// GetAllPrograms retrieves all programs ordered by title
func (s *ProgramService) GetAllPrograms(ctx context.Context) ([]*models.Program, error) {
	return s.programRepo.GetAll(ctx)
}

// UpdateProgram updates an existing program
func (s *ProgramService) UpdateProgram(ctx context.Context, id int64, req *dto.UpdateProgramRequest) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	program.Title = req.Title
	program.Summary = req.Summary

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, fmt.Errorf("error updating program: %w", err)
	}
	return program, nil
}

// DeleteProgram deletes a program
func (s *ProgramService) DeleteProgram(ctx context.Context, id int64) error {
	if _, err := s.programRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.programRepo.Delete(ctx, id)
}
