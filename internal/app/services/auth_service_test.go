package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/models/dto"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
	"github.com/eyobt/schoolhub/internal/pkg/auth"
)

type AuthServiceSuite struct {
	suite.Suite
	userRepo    *fakeUserRepo
	studentRepo *fakeStudentRepo
	parentRepo  *fakeParentRepo
	depHeadRepo *fakeDepHeadRepo
	tokenRepo   *fakeTokenRepo
	service     *AuthService
	ctx         context.Context
}

func (s *AuthServiceSuite) SetupTest() {
	s.userRepo = newFakeUserRepo()
	s.studentRepo = newFakeStudentRepo()
	s.parentRepo = newFakeParentRepo()
	s.depHeadRepo = newFakeDepHeadRepo()
	s.tokenRepo = newFakeTokenRepo()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "schoolhub-test",
	})
	txRunner := &fakeTxRunner{
		users:    s.userRepo,
		students: s.studentRepo,
		parents:  s.parentRepo,
		depHeads: s.depHeadRepo,
	}
	s.service = NewAuthService(
		s.userRepo, s.studentRepo, s.parentRepo, s.depHeadRepo, s.tokenRepo,
		txRunner, jwtService, "http://localhost:8080/uploads", zerolog.Nop(),
	)
	s.ctx = context.Background()
}

func (s *AuthServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) TestRegister() {
	s.Run("creates the account and issues a token pair", func() {
		resp, err := s.service.Register(s.ctx, &dto.RegisterRequest{
			Username: "abel",
			Password: "long-enough-password",
		})
		s.Require().NoError(err)
		s.NotEmpty(resp.Token.AccessToken)
		s.NotEmpty(resp.Token.RefreshToken)
		s.Equal("abel", resp.User.Username)

		user, err := s.userRepo.GetByUsername(s.ctx, "abel")
		s.Require().NoError(err)
		s.Equal(1, s.tokenRepo.activeTokens(user.ID))
	})

	s.Run("rejects a duplicate username", func() {
		_, err := s.service.Register(s.ctx, &dto.RegisterRequest{
			Username: "sara",
			Password: "long-enough-password",
		})
		s.Require().NoError(err)

		_, err = s.service.Register(s.ctx, &dto.RegisterRequest{
			Username: "sara",
			Password: "another-password",
		})
		s.Require().ErrorIs(err, apperrors.ErrUsernameAlreadyExists)
	})

	s.Run("rejects a blank username", func() {
		_, err := s.service.Register(s.ctx, &dto.RegisterRequest{
			Username: "   ",
			Password: "long-enough-password",
		})
		s.Require().ErrorIs(err, apperrors.ErrValidationFailed)
	})
}

func (s *AuthServiceSuite) TestRegisterParent() {
	s.Run("stores the full relationship word on the parent row", func() {
		for _, relationship := range []models.Relationship{
			models.RelationshipFather,
			models.RelationshipGrandmother,
		} {
			username := "parent-" + string(relationship)
			_, err := s.service.Register(s.ctx, &dto.RegisterRequest{
				Username:  username,
				Password:  "long-enough-password",
				FirstName: "Hana",
				LastName:  "Bekele",
				IsParent:  true,
				Parent: &dto.ParentExtension{
					FirstName:    "Hana",
					LastName:     "Bekele",
					Relationship: relationship,
				},
			})
			s.Require().NoError(err)

			user, err := s.userRepo.GetByUsername(s.ctx, username)
			s.Require().NoError(err)
			parent, err := s.parentRepo.GetByUserID(s.ctx, user.ID)
			s.Require().NoError(err)
			s.Equal(relationship, parent.Relationship)
		}
	})

	s.Run("a failed parent row leaves no account behind", func() {
		s.parentRepo.failCreate = true

		_, err := s.service.Register(s.ctx, &dto.RegisterRequest{
			Username:  "dawit",
			Password:  "long-enough-password",
			FirstName: "Dawit",
			LastName:  "Girma",
			IsParent:  true,
			Parent: &dto.ParentExtension{
				FirstName:    "Dawit",
				LastName:     "Girma",
				Relationship: models.RelationshipFather,
			},
		})
		s.Require().Error(err)

		_, err = s.userRepo.GetByUsername(s.ctx, "dawit")
		s.Require().ErrorIs(err, apperrors.ErrUserNotFound)
	})
}

func (s *AuthServiceSuite) TestRegisterStudent() {
	s.Run("creates the student extension row inside the account", func() {
		grade := "5"
		programID := int64(7)
		level := models.LevelPrimary
		_, err := s.service.Register(s.ctx, &dto.RegisterRequest{
			Username:  "liya",
			Password:  "long-enough-password",
			Grade:     &grade,
			IsStudent: true,
			Student: &dto.StudentExtension{
				Level:     &level,
				ProgramID: &programID,
			},
		})
		s.Require().NoError(err)

		user, err := s.userRepo.GetByUsername(s.ctx, "liya")
		s.Require().NoError(err)
		student, err := s.studentRepo.GetByUserID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Require().NotNil(student.ProgramID)
		s.Equal(programID, *student.ProgramID)
	})
}

func (s *AuthServiceSuite) TestLogin() {
	s.Run("authenticates a registered account", func() {
		_, err := s.service.Register(s.ctx, &dto.RegisterRequest{
			Username: "abel",
			Password: "long-enough-password",
		})
		s.Require().NoError(err)

		resp, err := s.service.Login(s.ctx, &dto.LoginRequest{
			Username: "abel",
			Password: "long-enough-password",
		})
		s.Require().NoError(err)
		s.Equal("abel", resp.User.Username)
	})

	s.Run("wrong password and unknown user both fail the same way", func() {
		_, err := s.service.Register(s.ctx, &dto.RegisterRequest{
			Username: "abel",
			Password: "long-enough-password",
		})
		s.Require().NoError(err)

		_, err = s.service.Login(s.ctx, &dto.LoginRequest{Username: "abel", Password: "wrong"})
		s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)

		_, err = s.service.Login(s.ctx, &dto.LoginRequest{Username: "nobody", Password: "whatever"})
		s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
	})
}

func (s *AuthServiceSuite) TestRefreshToken() {
	s.Run("rotation revokes the old token", func() {
		resp, err := s.service.Register(s.ctx, &dto.RegisterRequest{
			Username: "abel",
			Password: "long-enough-password",
		})
		s.Require().NoError(err)
		old := resp.Token.RefreshToken

		rotated, err := s.service.RefreshToken(s.ctx, old)
		s.Require().NoError(err)
		s.NotEqual(old, rotated.RefreshToken)

		_, err = s.service.RefreshToken(s.ctx, old)
		s.Require().ErrorIs(err, apperrors.ErrTokenRevoked)
	})

	s.Run("a blank token is rejected", func() {
		_, err := s.service.RefreshToken(s.ctx, "  ")
		s.Require().ErrorIs(err, apperrors.ErrTokenInvalid)
	})
}
