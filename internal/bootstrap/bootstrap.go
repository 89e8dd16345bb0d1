package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eyobt/schoolhub/internal/app/controllers"
	"github.com/eyobt/schoolhub/internal/app/migrations"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/app/routes"
	"github.com/eyobt/schoolhub/internal/app/services"
	"github.com/eyobt/schoolhub/internal/config"
	"github.com/eyobt/schoolhub/internal/db"
	"github.com/eyobt/schoolhub/internal/middleware"
	"github.com/eyobt/schoolhub/internal/pkg/auth"
	"github.com/eyobt/schoolhub/internal/pkg/filestorage"
	"github.com/eyobt/schoolhub/internal/pkg/helpers"
	"github.com/eyobt/schoolhub/internal/pkg/logger"
	"github.com/eyobt/schoolhub/internal/seed"
)

// Dependencies holds all application-wide constructed components.
type Dependencies struct {
	Repos       *repositories.Repositories
	JWTService  *auth.JWTService
	FileStorage *filestorage.LocalStorage

	AuthService       *services.AuthService
	UserService       *services.UserService
	ProgramService    *services.ProgramService
	CourseService     *services.CourseService
	AllocationService *services.AllocationService
	AttendanceService *services.AttendanceService

	AuthController       *controllers.AuthController
	UserController       *controllers.UserController
	ProgramController    *controllers.ProgramController
	CourseController     *controllers.CourseController
	AllocationController *controllers.AllocationController
	AttendanceController *controllers.AttendanceController

	AuthMiddleware *middleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads the application configuration and configures
// the global logger from it.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "text",
	})
	log.Info().Str("port", cfg.Server.Port).Str("mode", cfg.Server.Mode).Msg("Configuration loaded")

	return cfg, nil
}

// SetupDatabase connects to PostgreSQL, applies pending migrations, seeds
// default data and prunes stale refresh tokens.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info().Msg("Database connection successful")

	migrator := migrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer seedCancel()
	if err := seed.CreateDefaultData(seedCtx, dbPool, cfg, log.Logger); err != nil {
		log.Error().Err(err).Msg("Error seeding default data")
	}

	if _, err := repositories.NewTokenRepository(dbPool).CleanupExpiredTokens(seedCtx); err != nil {
		log.Error().Err(err).Msg("Error cleaning up expired refresh tokens")
	}

	return database, nil
}

// BuildDependencies constructs repositories, services, controllers and
// middleware on top of the connection pool.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(database.Pool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 7*24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	picturesBaseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, picturesBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = fileStorage

	// Services
	deps.AuthService = services.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.ParentRepository,
		deps.Repos.DepHeadRepository,
		deps.Repos.TokenRepository,
		database,
		deps.JWTService,
		picturesBaseURL,
		log.Logger,
	)
	deps.UserService = services.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TokenRepository,
		deps.FileStorage,
		log.Logger,
	)
	deps.ProgramService = services.NewProgramService(deps.Repos.ProgramRepository)
	deps.CourseService = services.NewCourseService(deps.Repos.CourseRepository, deps.Repos.ProgramRepository)
	deps.AllocationService = services.NewAllocationService(
		deps.Repos.AllocationRepository,
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
	)
	deps.AttendanceService = services.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.UserRepository,
		deps.Repos.AllocationRepository,
		log.Logger,
	)

	// Controllers
	deps.AuthController = controllers.NewAuthController(deps.AuthService, log.Logger)
	deps.UserController = controllers.NewUserController(deps.UserService, picturesBaseURL, log.Logger)
	deps.ProgramController = controllers.NewProgramController(deps.ProgramService, log.Logger)
	deps.CourseController = controllers.NewCourseController(deps.CourseService, log.Logger)
	deps.AllocationController = controllers.NewAllocationController(deps.AllocationService, deps.UserService, picturesBaseURL, log.Logger)
	deps.AttendanceController = controllers.NewAttendanceController(deps.AttendanceService, picturesBaseURL, log.Logger)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	return deps, nil
}

// SetupRouter creates the gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	switch cfg.Server.Mode {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	routes.SetupSwagger(router)
	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.UserController,
		deps.ProgramController,
		deps.CourseController,
		deps.AllocationController,
		deps.AttendanceController,
		deps.AuthMiddleware,
	)

	return router
}
