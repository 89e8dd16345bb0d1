package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/app/services"
	"github.com/eyobt/schoolhub/internal/middleware"
)

// AttendanceController handles roster loading and attendance marking
type AttendanceController struct {
	attendanceService *services.AttendanceService
	picturesURL       string
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, picturesURL string, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		picturesURL:       picturesURL,
		logger:            logger,
	}
}

// LoadRoster returns the students of a grade for marking
// @Summary Load roster
// @Description Returns the students of a grade ordered by username, the set marks are taken against
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param grade query string true "Grade label (1-10)"
// @Param period query int true "Period of the day (1-6)"
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse} "Roster"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade or period"
// @Failure 302 {string} string "Redirected: caller is neither lecturer nor admin"
// @Router /attendance/roster [get]
func (c *AttendanceController) LoadRoster(ctx *gin.Context) {
	var req dto.RosterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	students, err := c.attendanceService.LoadRoster(ctx.Request.Context(), req.Grade, req.Period)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.RosterResponse{
		Grade:    req.Grade,
		Period:   req.Period,
		Students: make([]dto.UserResponse, 0, len(students)),
	}
	for _, student := range students {
		resp.Students = append(resp.Students, dto.NewUserResponse(student, c.picturesURL))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// SaveAttendance records a batch of marks for today
// @Summary Save attendance
// @Description Upserts one mark per roster student for today's date and the given period. Marks for accounts not on the roster are skipped; a failing row does not stop the batch.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveAttendanceRequest true "Batch of marks keyed by student account ID"
// @Success 200 {object} dto.APIResponse{data=dto.SaveAttendanceResponse} "Marks recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade, period or status"
// @Failure 302 {string} string "Redirected: caller is neither lecturer nor admin"
// @Router /attendance [post]
func (c *AttendanceController) SaveAttendance(ctx *gin.Context) {
	var req dto.SaveAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	markerID := ctx.GetInt64("userID")
	result, err := c.attendanceService.SaveAttendance(ctx.Request.Context(), markerID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("grade", req.Grade).Int("period", req.Period).Msg("Failed to save attendance")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("grade", req.Grade).
		Int("period", req.Period).
		Int("saved", result.Saved).
		Int("skipped", result.Skipped).
		Int64("markedBy", markerID).
		Msg("Attendance batch saved")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SaveAttendanceResponse{
		Date: result.Date.Format("2006-01-02"),
	}})
}

// ListAttendance lists stored attendance rows
// @Summary List attendance
// @Description Lists attendance rows newest date first, filtered by grade, date, period or status
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param grade query string false "Grade label"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param period query int false "Period of the day"
// @Param status query string false "Mark (P, A or L)"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceRecordResponse} "Attendance rows"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /attendance [get]
func (c *AttendanceController) ListAttendance(ctx *gin.Context) {
	var req dto.AttendanceListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	records, err := c.attendanceService.ListAttendance(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AttendanceRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.NewAttendanceRecordResponse(record))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}
