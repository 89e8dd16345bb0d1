package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
)

// AttendanceService handles roster loading and attendance marking
type AttendanceService struct {
	attendanceRepo repositories.IAttendanceRepository
	userRepo       repositories.IUserRepository
	allocationRepo repositories.IAllocationRepository
	logger         zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendanceRepo repositories.IAttendanceRepository,
	userRepo repositories.IUserRepository,
	allocationRepo repositories.IAllocationRepository,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		allocationRepo: allocationRepo,
		logger:         logger,
	}
}

// SaveResult reports the outcome of a batch attendance save.
type SaveResult struct {
	Date    time.Time
	Saved   int
	Skipped int
}

// LoadRoster returns the students of a grade ordered by username, the set a
// lecturer marks attendance against for one period.
func (s *AttendanceService) LoadRoster(ctx context.Context, grade string, period int) ([]*models.User, error) {
	if !models.ValidGrade(grade) {
		return nil, apperrors.ErrInvalidGrade
	}
	if !models.ValidPeriod(period) {
		return nil, apperrors.ErrInvalidPeriod
	}
	return s.userRepo.ListStudentsByGrade(ctx, grade)
}

// SaveAttendance records one batch of marks for today. Each mark is an
// upsert keyed by (student, date, period), so re-saving the same batch
// overwrites earlier marks instead of duplicating them. Marks for accounts
// not on the grade's roster are skipped, and a failed row does not stop the
// rest of the batch.
func (s *AttendanceService) SaveAttendance(ctx context.Context, markerID int64, req *dto.SaveAttendanceRequest) (*SaveResult, error) {
	if !models.ValidGrade(req.Grade) {
		return nil, apperrors.ErrInvalidGrade
	}
	if !models.ValidPeriod(req.Period) {
		return nil, apperrors.ErrInvalidPeriod
	}
	for _, status := range req.Marks {
		if !models.ValidAttendanceStatus(status) {
			return nil, apperrors.ErrInvalidStatus
		}
	}

	roster, err := s.userRepo.ListStudentsByGrade(ctx, req.Grade)
	if err != nil {
		return nil, fmt.Errorf("error loading roster: %w", err)
	}
	known := make(map[int64]bool, len(roster))
	for _, student := range roster {
		known[student.ID] = true
	}

	// Stable order keeps batch outcomes reproducible
	studentIDs := make([]int64, 0, len(req.Marks))
	for studentID := range req.Marks {
		studentIDs = append(studentIDs, studentID)
	}
	sort.Slice(studentIDs, func(i, j int) bool { return studentIDs[i] < studentIDs[j] })

	courseID := req.CourseID
	if courseID == nil {
		courseID = s.resolveCourse(ctx, markerID, req.Grade)
	}

	today := truncateToDate(time.Now())
	result := &SaveResult{Date: today}

	for _, studentID := range studentIDs {
		if !known[studentID] {
			s.logger.Warn().Int64("studentID", studentID).Str("grade", req.Grade).
				Msg("Skipping attendance mark for account not on roster")
			result.Skipped++
			continue
		}

		record := &models.Attendance{
			StudentID: studentID,
			Grade:     req.Grade,
			CourseID:  courseID,
			Date:      today,
			Period:    req.Period,
			Status:    req.Marks[studentID],
			MarkedBy:  &markerID,
		}
		if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
			s.logger.Error().Err(err).Int64("studentID", studentID).Int("period", req.Period).
				Msg("Failed to save attendance mark")
			result.Skipped++
			continue
		}
		result.Saved++
	}

	return result, nil
}

// resolveCourse finds the course a batch of marks belongs to when the request
// names none: the single course of the marker's allocation matching the
// grade. Ambiguity or a missing allocation leaves the marks without a course.
func (s *AttendanceService) resolveCourse(ctx context.Context, markerID int64, grade string) *int64 {
	allocation, err := s.allocationRepo.GetByLecturerID(ctx, markerID)
	if err != nil {
		return nil
	}

	var match *int64
	for _, course := range allocation.Courses {
		if course.Grade != grade {
			continue
		}
		if match != nil {
			return nil
		}
		id := course.ID
		match = &id
	}
	return match
}

// ListAttendance retrieves stored attendance rows matching the filters.
func (s *AttendanceService) ListAttendance(ctx context.Context, req *dto.AttendanceListRequest) ([]*models.Attendance, error) {
	filter := models.AttendanceFilter{
		Grade:  req.Grade,
		Period: req.Period,
		Status: models.AttendanceStatus(req.Status),
	}
	if req.Grade != "" && !models.ValidGrade(req.Grade) {
		return nil, apperrors.ErrInvalidGrade
	}
	if req.Period != 0 && !models.ValidPeriod(req.Period) {
		return nil, apperrors.ErrInvalidPeriod
	}
	if req.Status != "" && !models.ValidAttendanceStatus(filter.Status) {
		return nil, apperrors.ErrInvalidStatus
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
		}
		filter.Date = &date
	}

	return s.attendanceRepo.List(ctx, filter)
}

// truncateToDate drops the time-of-day so one calendar day maps to one
// attendance slot per student and period.
func truncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
