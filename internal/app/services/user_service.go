package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/pkg/filestorage"
	"github.com/eyobt/schoolhub/internal/pkg/imageutil"
)

// pictureSubPath is the storage subdirectory for profile pictures.
const pictureSubPath = "profile_pictures"

// UserService handles account administration and profile operations.
type UserService struct {
	userRepo    repositories.IUserRepository
	studentRepo repositories.IStudentRepository
	tokenRepo   repositories.ITokenRepository
	fileStorage *filestorage.LocalStorage
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentRepository,
	tokenRepo repositories.ITokenRepository,
	fileStorage *filestorage.LocalStorage,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		tokenRepo:   tokenRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// GetUserByID retrieves an account by ID
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers retrieves accounts, optionally filtered by a username search term
func (s *UserService) ListUsers(ctx context.Context, search string) ([]*models.User, error) {
	return s.userRepo.List(ctx, search)
}

// ListLecturers retrieves accounts carrying the lecturer flag, the candidate
// targets for course allocation.
func (s *UserService) ListLecturers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListLecturers(ctx)
}

// GetCounts tallies accounts per role flag plus students by gender.
func (s *UserService) GetCounts(ctx context.Context) (models.UserCounts, models.GenderCounts, error) {
	counts, err := s.userRepo.Counts(ctx)
	if err != nil {
		return models.UserCounts{}, models.GenderCounts{}, err
	}
	genders, err := s.studentRepo.GenderCounts(ctx)
	if err != nil {
		return models.UserCounts{}, models.GenderCounts{}, err
	}
	return counts, genders, nil
}

// UpdateProfile updates an account's profile fields. Saving a profile also
// re-fits the stored picture to the profile bounds, so an oversized image
// that slipped past the upload-time downscale is caught on the next save.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Gender = req.Gender
	user.Phone = req.Phone
	user.Address = req.Address

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	if !user.HasDefaultPicture() {
		if err := imageutil.FitProfilePicture(s.fileStorage.FullPath(user.Picture)); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Str("path", user.Picture).
				Msg("Could not downscale profile picture, keeping original")
		}
	}

	return user, nil
}

// UpdateProfilePicture stores a new profile picture for the account,
// downscales it to fit the profile bounds and removes the previous upload.
// The downscale is best effort: a decode or encode failure leaves the
// original upload in place and is only logged.
func (s *UserService) UpdateProfilePicture(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	storedPath, err := s.fileStorage.SaveFileWithPath(file, pictureSubPath)
	if err != nil {
		return nil, fmt.Errorf("error saving profile picture: %w", err)
	}

	if err := imageutil.FitProfilePicture(s.fileStorage.FullPath(storedPath)); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Str("path", storedPath).
			Msg("Could not downscale profile picture, keeping original")
	}

	oldPicture := user.Picture
	hadDefault := user.HasDefaultPicture()

	if err := s.userRepo.UpdatePicture(ctx, userID, storedPath); err != nil {
		// Roll back the orphaned upload
		_ = s.fileStorage.DeleteFile(storedPath)
		return nil, fmt.Errorf("error updating profile picture: %w", err)
	}
	user.Picture = storedPath

	if !hadDefault {
		if err := s.fileStorage.DeleteFile(oldPicture); err != nil {
			s.logger.Warn().Err(err).Str("path", oldPicture).Msg("Could not delete previous profile picture")
		}
	}

	return user, nil
}

// DeleteProfilePicture resets the account to the placeholder picture. The
// stored file is removed unless the account was already on the placeholder.
func (s *UserService) DeleteProfilePicture(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.HasDefaultPicture() {
		if err := s.fileStorage.DeleteFile(user.Picture); err != nil {
			s.logger.Warn().Err(err).Str("path", user.Picture).Msg("Could not delete profile picture file")
		}
	}

	return s.userRepo.UpdatePicture(ctx, userID, "")
}

// DeleteUser removes an account. Extension rows and attendance records go
// with it through the schema's cascade rules; the stored picture is removed
// here unless it is the placeholder, and outstanding refresh tokens are
// revoked so in-flight sessions cannot rotate.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.HasDefaultPicture() {
		if err := s.fileStorage.DeleteFile(user.Picture); err != nil {
			s.logger.Warn().Err(err).Str("path", user.Picture).Msg("Could not delete profile picture file")
		}
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Could not revoke refresh tokens")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Str("username", user.Username).Msg("Deleted user account")
	return nil
}

// DeleteStudent removes a student row together with its underlying account.
func (s *UserService) DeleteStudent(ctx context.Context, studentID int64) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	return s.DeleteUser(ctx, student.UserID)
}
