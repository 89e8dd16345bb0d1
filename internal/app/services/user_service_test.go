package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
	"github.com/eyobt/schoolhub/internal/pkg/filestorage"
	"github.com/eyobt/schoolhub/internal/pkg/imageutil"
)

type UserServiceSuite struct {
	suite.Suite
	userRepo    *fakeUserRepo
	studentRepo *fakeStudentRepo
	tokenRepo   *fakeTokenRepo
	storage     *filestorage.LocalStorage
	service     *UserService
	ctx         context.Context
}

func (s *UserServiceSuite) SetupTest() {
	storage, err := filestorage.NewLocalStorage(s.T().TempDir(), "/uploads")
	s.Require().NoError(err)

	s.userRepo = newFakeUserRepo()
	s.studentRepo = newFakeStudentRepo()
	s.tokenRepo = newFakeTokenRepo()
	s.storage = storage
	s.service = NewUserService(s.userRepo, s.studentRepo, s.tokenRepo, storage, zerolog.Nop())
	s.ctx = context.Background()
}

func (s *UserServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

// pngUpload builds a multipart file header carrying a generated PNG.
func (s *UserServiceSuite) pngUpload(width, height int) *multipart.FileHeader {
	var img bytes.Buffer
	s.Require().NoError(png.Encode(&img, image.NewRGBA(image.Rect(0, 0, width, height))))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("picture", "upload.png")
	s.Require().NoError(err)
	_, err = part.Write(img.Bytes())
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	s.Require().NoError(err)
	return form.File["picture"][0]
}

func (s *UserServiceSuite) TestUpdateProfilePicture() {
	s.Run("stores the upload and downscales it to fit", func() {
		user := &models.User{Username: "abel"}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))

		updated, err := s.service.UpdateProfilePicture(s.ctx, user.ID, s.pngUpload(900, 600))
		s.Require().NoError(err)
		s.Require().NotEmpty(updated.Picture)
		s.False(updated.HasDefaultPicture())

		file, err := os.Open(s.storage.FullPath(updated.Picture))
		s.Require().NoError(err)
		defer file.Close()
		cfg, _, err := image.DecodeConfig(file)
		s.Require().NoError(err)
		s.LessOrEqual(cfg.Width, imageutil.MaxProfileDimension)
		s.LessOrEqual(cfg.Height, imageutil.MaxProfileDimension)
	})

	s.Run("replacing a picture removes the previous file", func() {
		user := &models.User{Username: "abel"}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))

		first, err := s.service.UpdateProfilePicture(s.ctx, user.ID, s.pngUpload(100, 100))
		s.Require().NoError(err)
		firstPath := s.storage.FullPath(first.Picture)

		_, err = s.service.UpdateProfilePicture(s.ctx, user.ID, s.pngUpload(100, 100))
		s.Require().NoError(err)

		_, err = os.Stat(firstPath)
		s.True(os.IsNotExist(err))
	})
}

func (s *UserServiceSuite) TestDeleteProfilePicture() {
	s.Run("removes the stored file and resets to the placeholder", func() {
		user := &models.User{Username: "abel"}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))

		updated, err := s.service.UpdateProfilePicture(s.ctx, user.ID, s.pngUpload(100, 100))
		s.Require().NoError(err)
		storedFile := s.storage.FullPath(updated.Picture)

		s.Require().NoError(s.service.DeleteProfilePicture(s.ctx, user.ID))

		_, err = os.Stat(storedFile)
		s.True(os.IsNotExist(err))

		fresh, err := s.userRepo.GetByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.True(fresh.HasDefaultPicture())
	})

	s.Run("placeholder accounts reset without touching storage", func() {
		user := &models.User{Username: "abel"}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))
		s.NoError(s.service.DeleteProfilePicture(s.ctx, user.ID))
	})
}

func (s *UserServiceSuite) TestDeleteUser() {
	s.Run("removes the account and its stored picture", func() {
		user := &models.User{Username: "abel"}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))

		updated, err := s.service.UpdateProfilePicture(s.ctx, user.ID, s.pngUpload(100, 100))
		s.Require().NoError(err)
		storedFile := s.storage.FullPath(updated.Picture)

		s.Require().NoError(s.service.DeleteUser(s.ctx, user.ID))

		_, err = s.userRepo.GetByID(s.ctx, user.ID)
		s.Require().ErrorIs(err, apperrors.ErrUserNotFound)
		_, err = os.Stat(storedFile)
		s.True(os.IsNotExist(err))
	})

	s.Run("revokes the account's refresh tokens", func() {
		user := &models.User{Username: "abel"}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))
		expiry := time.Now().Add(time.Hour)
		s.Require().NoError(s.tokenRepo.CreateToken(s.ctx, "refresh-a", user.ID, expiry))
		s.Require().NoError(s.tokenRepo.CreateToken(s.ctx, "refresh-b", user.ID, expiry))

		s.Require().NoError(s.service.DeleteUser(s.ctx, user.ID))

		s.Equal(0, s.tokenRepo.activeTokens(user.ID))
	})

	s.Run("returns ErrUserNotFound for an unknown account", func() {
		s.Require().ErrorIs(s.service.DeleteUser(s.ctx, 424242), apperrors.ErrUserNotFound)
	})
}

func (s *UserServiceSuite) TestDeleteStudent() {
	s.Run("deleting a student removes the underlying account", func() {
		grade := "5"
		user := &models.User{Username: "abel", IsStudent: true, Grade: &grade}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))
		student := &models.Student{UserID: user.ID}
		s.Require().NoError(s.studentRepo.Create(s.ctx, student))

		s.Require().NoError(s.service.DeleteStudent(s.ctx, student.ID))

		_, err := s.userRepo.GetByID(s.ctx, user.ID)
		s.Require().ErrorIs(err, apperrors.ErrUserNotFound)
	})

	s.Run("returns ErrStudentNotFound for an unknown student", func() {
		s.Require().ErrorIs(s.service.DeleteStudent(s.ctx, 424242), apperrors.ErrStudentNotFound)
	})
}

func (s *UserServiceSuite) TestUpdateProfile() {
	s.Run("updates the editable fields", func() {
		user := &models.User{Username: "abel", FirstName: "Abel"}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))

		email := "abel@example.com"
		updated, err := s.service.UpdateProfile(s.ctx, user.ID, &dto.UpdateProfileRequest{
			FirstName: "Abel",
			LastName:  "Tesfaye",
			Email:     &email,
		})
		s.Require().NoError(err)
		s.Equal("Abel Tesfaye", updated.FullName())
		s.Require().NotNil(updated.Email)
		s.Equal(email, *updated.Email)
	})

	s.Run("saving the profile re-fits an oversized stored picture", func() {
		user := &models.User{Username: "abel", Picture: "profile_pictures/abel.png"}
		s.Require().NoError(s.userRepo.Create(s.ctx, user))

		storedFile := s.storage.FullPath(user.Picture)
		s.Require().NoError(os.MkdirAll(filepath.Dir(storedFile), 0o755))
		var img bytes.Buffer
		s.Require().NoError(png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 900, 600))))
		s.Require().NoError(os.WriteFile(storedFile, img.Bytes(), 0o644))

		_, err := s.service.UpdateProfile(s.ctx, user.ID, &dto.UpdateProfileRequest{
			FirstName: "Abel",
			LastName:  "Tesfaye",
		})
		s.Require().NoError(err)

		file, err := os.Open(storedFile)
		s.Require().NoError(err)
		defer file.Close()
		cfg, _, err := image.DecodeConfig(file)
		s.Require().NoError(err)
		s.LessOrEqual(cfg.Width, imageutil.MaxProfileDimension)
		s.LessOrEqual(cfg.Height, imageutil.MaxProfileDimension)
	})
}
