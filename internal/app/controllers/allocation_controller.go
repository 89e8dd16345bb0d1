package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/app/services"
	"github.com/eyobt/schoolhub/internal/middleware"
)

// AllocationController handles lecturer course allocations
type AllocationController struct {
	allocationService *services.AllocationService
	userService       *services.UserService
	picturesURL       string
	logger            zerolog.Logger
}

// NewAllocationController creates a new AllocationController
func NewAllocationController(
	allocationService *services.AllocationService,
	userService *services.UserService,
	picturesURL string,
	logger zerolog.Logger,
) *AllocationController {
	return &AllocationController{
		allocationService: allocationService,
		userService:       userService,
		picturesURL:       picturesURL,
		logger:            logger,
	}
}

func (c *AllocationController) toResponse(ctx *gin.Context, allocation *models.CourseAllocation) (*dto.AllocationResponse, error) {
	lecturer, err := c.userService.GetUserByID(ctx.Request.Context(), allocation.LecturerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AllocationResponse{
		LecturerID: allocation.LecturerID,
		Lecturer:   dto.NewUserResponse(lecturer, c.picturesURL),
	}
	for _, course := range allocation.Courses {
		resp.CourseIDs = append(resp.CourseIDs, course.ID)
		resp.CourseTitles = append(resp.CourseTitles, course.Title)
	}
	return resp, nil
}

// ReplaceAllocation assigns a lecturer their course set
// @Summary Replace allocation
// @Description Assigns the given courses to a lecturer, replacing any previous allocation in full
// @Tags allocations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lecturerId path int true "Lecturer account ID"
// @Param request body dto.ReplaceAllocationRequest true "Course IDs"
// @Success 200 {object} dto.APIResponse{data=dto.AllocationResponse} "New allocation"
// @Failure 400 {object} dto.ErrorResponse "Account is not a lecturer"
// @Failure 404 {object} dto.ErrorResponse "Lecturer or course not found"
// @Router /allocations/{lecturerId} [put]
func (c *AllocationController) ReplaceAllocation(ctx *gin.Context) {
	lecturerID, ok := parseIDParam(ctx, "lecturerId")
	if !ok {
		return
	}

	var req dto.ReplaceAllocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	allocation, err := c.allocationService.ReplaceAllocation(ctx.Request.Context(), lecturerID, req.CourseIDs)
	if err != nil {
		c.logger.Warn().Err(err).Int64("lecturerID", lecturerID).Msg("Failed to replace allocation")
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.toResponse(ctx, allocation)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("lecturerID", lecturerID).Ints64("courseIDs", req.CourseIDs).Msg("Allocation replaced")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetAllocation retrieves a lecturer's allocation
// @Summary Get allocation
// @Tags allocations
// @Produce json
// @Security BearerAuth
// @Param lecturerId path int true "Lecturer account ID"
// @Success 200 {object} dto.APIResponse{data=dto.AllocationResponse} "Allocation"
// @Failure 404 {object} dto.ErrorResponse "Allocation not found"
// @Router /allocations/{lecturerId} [get]
func (c *AllocationController) GetAllocation(ctx *gin.Context) {
	lecturerID, ok := parseIDParam(ctx, "lecturerId")
	if !ok {
		return
	}

	allocation, err := c.allocationService.GetAllocation(ctx.Request.Context(), lecturerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.toResponse(ctx, allocation)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ListAllocations lists every lecturer allocation
// @Summary List allocations
// @Tags allocations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AllocationResponse} "Allocations"
// @Router /allocations [get]
func (c *AllocationController) ListAllocations(ctx *gin.Context) {
	allocations, err := c.allocationService.ListAllocations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]*dto.AllocationResponse, 0, len(allocations))
	for _, allocation := range allocations {
		resp, err := c.toResponse(ctx, allocation)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		responses = append(responses, resp)
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// DeleteAllocation clears a lecturer's allocation
// @Summary Delete allocation
// @Tags allocations
// @Produce json
// @Security BearerAuth
// @Param lecturerId path int true "Lecturer account ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Allocation cleared"
// @Failure 404 {object} dto.ErrorResponse "Allocation not found"
// @Router /allocations/{lecturerId} [delete]
func (c *AllocationController) DeleteAllocation(ctx *gin.Context) {
	lecturerID, ok := parseIDParam(ctx, "lecturerId")
	if !ok {
		return
	}

	if err := c.allocationService.DeleteAllocation(ctx.Request.Context(), lecturerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Allocation cleared"}})
}
