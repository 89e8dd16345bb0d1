package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
	"github.com/eyobt/schoolhub/internal/pkg/auth"
)

// TxRunner runs a function inside one database transaction. Satisfied by
// db.PostgresDB.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo    repositories.IUserRepository
	studentRepo repositories.IStudentRepository
	parentRepo  repositories.IParentRepository
	depHeadRepo repositories.IDepHeadRepository
	tokenRepo   repositories.ITokenRepository
	txRunner    TxRunner
	jwtService  *auth.JWTService
	picturesURL string
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentRepository,
	parentRepo repositories.IParentRepository,
	depHeadRepo repositories.IDepHeadRepository,
	tokenRepo repositories.ITokenRepository,
	txRunner TxRunner,
	jwtService *auth.JWTService,
	picturesURL string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		parentRepo:  parentRepo,
		depHeadRepo: depHeadRepo,
		tokenRepo:   tokenRepo,
		txRunner:    txRunner,
		jwtService:  jwtService,
		picturesURL: picturesURL,
		logger:      logger,
	}
}

// Register creates a new account with its role flags and, where a flag is
// set, the matching extension row. The username must be unique.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking if username exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:    username,
		Password:    hashedPassword,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Address:     req.Address,
		Grade:       req.Grade,
		ParentID:    req.ParentID,
		IsStudent:   req.IsStudent,
		IsLecturer:  req.IsLecturer,
		IsParent:    req.IsParent,
		IsDepHead:   req.IsDepHead,
		IsSuperuser: req.IsSuperuser,
	}

	// Account and extension rows land together or not at all
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
			return fmt.Errorf("user creation error: %w", err)
		}

		if user.IsStudent {
			student := &models.Student{UserID: user.ID}
			if req.Student != nil {
				student.Level = req.Student.Level
				student.ProgramID = req.Student.ProgramID
			}
			if err := s.studentRepo.WithTx(tx).Create(ctx, student); err != nil {
				return fmt.Errorf("student creation error: %w", err)
			}
		}

		if user.IsParent {
			parent := &models.Parent{UserID: user.ID, FirstName: req.FirstName, LastName: req.LastName}
			if req.Parent != nil {
				parent.StudentID = req.Parent.StudentID
				parent.FirstName = req.Parent.FirstName
				parent.LastName = req.Parent.LastName
				parent.Phone = req.Parent.Phone
				parent.Email = req.Parent.Email
				parent.Relationship = req.Parent.Relationship
			}
			if err := s.parentRepo.WithTx(tx).Create(ctx, parent); err != nil {
				return fmt.Errorf("parent creation error: %w", err)
			}
		}

		if user.IsDepHead {
			head := &models.DepartmentHead{UserID: user.ID}
			if req.DepHead != nil {
				head.ProgramID = req.DepHead.ProgramID
			}
			if err := s.depHeadRepo.WithTx(tx).Create(ctx, head); err != nil {
				return fmt.Errorf("department head creation error: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *token,
		User:  dto.NewUserResponse(user, s.picturesURL),
	}, nil
}

// Login authenticates an account by username and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role())).Msg("User logged in")

	return &dto.AuthResponse{
		Token: *token,
		User:  dto.NewUserResponse(user, s.picturesURL),
	}, nil
}

// RefreshToken rotates a refresh token: the old token is revoked and a new
// pair is issued. Reuse of a rotated token fails with ErrTokenRevoked.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, _, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found for token: %w", err)
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// GetProfile retrieves the account behind a user ID
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user, s.picturesURL)
	return &resp, nil
}

// generateTokenResponse creates a token pair and stores the refresh token
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}
