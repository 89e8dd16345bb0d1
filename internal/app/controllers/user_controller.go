package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/app/services"
	"github.com/eyobt/schoolhub/internal/middleware"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
)

// UserController handles account administration and profile operations
type UserController struct {
	userService *services.UserService
	picturesURL string
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, picturesURL string, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		picturesURL: picturesURL,
		logger:      logger,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID parameter")
		errorDetail = errorDetail.WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListUsers lists accounts
// @Summary List accounts
// @Description Lists accounts, optionally filtered by a username search term
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Username search term"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Accounts"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var req dto.UserListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	users, err := c.userService.ListUsers(ctx.Request.Context(), req.Search)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list users")
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user, c.picturesURL))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// ListLecturers lists the accounts carrying the lecturer flag
// @Summary List lecturers
// @Description Lists lecturer accounts, the candidate targets for course allocation
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Lecturers"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /lecturers [get]
func (c *UserController) ListLecturers(ctx *gin.Context) {
	lecturers, err := c.userService.ListLecturers(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list lecturers")
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(lecturers))
	for _, lecturer := range lecturers {
		responses = append(responses, dto.NewUserResponse(lecturer, c.picturesURL))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// GetUser retrieves one account
// @Summary Get account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Account"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewUserResponse(user, c.picturesURL)})
}

// GetCounts tallies accounts
// @Summary Account counts
// @Description Counts accounts per role flag plus students by gender
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Counts"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /users/counts [get]
func (c *UserController) GetCounts(ctx *gin.Context) {
	counts, genders, err := c.userService.GetCounts(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to compute account counts")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{
		"roles":   counts,
		"genders": genders,
	}})
}

// UpdateProfile updates the authenticated account's profile
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated account"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID := ctx.GetInt64("userID")
	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewUserResponse(user, c.picturesURL)})
}

// UpdateProfilePicture replaces the authenticated account's picture
// @Summary Upload profile picture
// @Description Stores the uploaded image, downscaling it to at most 300x300
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param picture formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated account"
// @Failure 400 {object} dto.ErrorResponse "No file uploaded"
// @Router /users/me/picture [post]
func (c *UserController) UpdateProfilePicture(ctx *gin.Context) {
	file, err := ctx.FormFile("picture")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Picture file required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	user, err := c.userService.UpdateProfilePicture(ctx.Request.Context(), userID, file)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update profile picture")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewUserResponse(user, c.picturesURL)})
}

// DeleteProfilePicture resets the authenticated account to the placeholder
// @Summary Delete profile picture
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Picture removed"
// @Router /users/me/picture [delete]
func (c *UserController) DeleteProfilePicture(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")
	if err := c.userService.DeleteProfilePicture(ctx.Request.Context(), userID); err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to delete profile picture")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Profile picture removed"}})
}

// DeleteUser removes an account
// @Summary Delete account
// @Description Removes an account together with its extension and attendance records
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Account deleted"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// An admin cannot delete their own account through this route
	if id == ctx.GetInt64("userID") {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("cannot delete your own account"))
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Account deleted"}})
}

// DeleteStudent removes a student and their account
// @Summary Delete student
// @Description Removes a student record together with the underlying account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *UserController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Student deleted"}})
}
