package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eyobt/schoolhub/internal/app/controllers"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	programController *controllers.ProgramController,
	courseController *controllers.CourseController,
	allocationController *controllers.AllocationController,
	attendanceController *controllers.AttendanceController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Own-profile routes, open to every authenticated account
		me := authenticated.Group("/users/me")
		{
			me.GET("", authController.Me)
			me.PUT("", userController.UpdateProfile)
			me.POST("/picture", userController.UpdateProfilePicture)
			me.DELETE("/picture", userController.DeleteProfilePicture)
		}

		// Catalog reads are open to every authenticated account
		authenticated.GET("/programs", programController.ListPrograms)
		authenticated.GET("/programs/:id", programController.GetProgram)
		authenticated.GET("/courses", courseController.ListCourses)
		authenticated.GET("/courses/:id", courseController.GetCourse)

		// Attendance routes: lecturers and admins only, others are
		// redirected to the site root
		attendance := authenticated.Group("")
		attendance.Use(authMiddleware.LecturerOrAdmin())
		{
			attendance.GET("/attendance/roster", attendanceController.LoadRoster)
			attendance.POST("/attendance", attendanceController.SaveAttendance)
			attendance.GET("/attendance", attendanceController.ListAttendance)
		}

		// Administration routes
		admin := authenticated.Group("")
		admin.Use(authMiddleware.AdminRequired())
		{
			// Account creation is an administrative action
			admin.POST("/auth/register", authController.Register)

			admin.GET("/users", userController.ListUsers)
			admin.GET("/lecturers", userController.ListLecturers)
			admin.GET("/users/counts", userController.GetCounts)
			admin.GET("/users/:id", userController.GetUser)
			admin.DELETE("/users/:id", userController.DeleteUser)
			admin.DELETE("/students/:id", userController.DeleteStudent)

			admin.POST("/programs", programController.CreateProgram)
			admin.PUT("/programs/:id", programController.UpdateProgram)
			admin.DELETE("/programs/:id", programController.DeleteProgram)

			admin.POST("/courses", courseController.CreateCourse)
			admin.PUT("/courses/:id", courseController.UpdateCourse)
			admin.DELETE("/courses/:id", courseController.DeleteCourse)

			admin.GET("/allocations", allocationController.ListAllocations)
			admin.GET("/allocations/:lecturerId", allocationController.GetAllocation)
			admin.PUT("/allocations/:lecturerId", allocationController.ReplaceAllocation)
			admin.DELETE("/allocations/:lecturerId", allocationController.DeleteAllocation)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
