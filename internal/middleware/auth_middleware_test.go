package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/pkg/apperrors"
	"github.com/eyobt/schoolhub/internal/pkg/auth"
)

type stubUserRepo struct {
	users map[int64]*models.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

func (r *stubUserRepo) UpdatePicture(ctx context.Context, userID int64, storedPath string) error {
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r *stubUserRepo) List(ctx context.Context, search string) ([]*models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Counts(ctx context.Context) (models.UserCounts, error) {
	return models.UserCounts{}, nil
}

func (r *stubUserRepo) ListStudentsByGrade(ctx context.Context, grade string) ([]*models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) ListLecturers(ctx context.Context) ([]*models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) WithTx(tx pgx.Tx) repositories.IUserRepository { return r }

type AuthMiddlewareSuite struct {
	suite.Suite

	jwtService *auth.JWTService
	userRepo   *stubUserRepo
	router     *gin.Engine
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.jwtService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	s.userRepo = &stubUserRepo{users: map[int64]*models.User{}}

	mw := NewAuthMiddleware(s.jwtService, s.userRepo)

	s.router = gin.New()
	attendance := s.router.Group("/attendance", mw.JWTAuth(), mw.LecturerOrAdmin())
	attendance.GET("/roster", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	admin := s.router.Group("/admin", mw.JWTAuth(), mw.AdminRequired())
	admin.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func (s *AuthMiddlewareSuite) addUser(id int64, mutate func(u *models.User)) string {
	user := &models.User{ID: id, Username: "user"}
	if mutate != nil {
		mutate(user)
	}
	s.userRepo.users[id] = user

	accessToken, _, _, _, err := s.jwtService.GenerateTokenPair(user)
	s.Require().NoError(err)
	return accessToken
}

func (s *AuthMiddlewareSuite) request(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuthMiddlewareSuite) TestLecturerReachesAttendance() {
	token := s.addUser(1, func(u *models.User) { u.IsLecturer = true })

	rec := s.request("/attendance/roster", token)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestAdminReachesAttendance() {
	token := s.addUser(2, func(u *models.User) { u.IsSuperuser = true })

	rec := s.request("/attendance/roster", token)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestStudentRedirectedFromAttendance() {
	token := s.addUser(3, func(u *models.User) { u.IsStudent = true })

	rec := s.request("/attendance/roster", token)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/", rec.Header().Get("Location"))
}

func (s *AuthMiddlewareSuite) TestPlainAccountRedirectedFromAttendance() {
	token := s.addUser(4, nil)

	rec := s.request("/attendance/roster", token)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/", rec.Header().Get("Location"))
}

func (s *AuthMiddlewareSuite) TestFlagsReadFromDatabaseNotToken() {
	// The token was minted while the account was a lecturer; the flag has
	// since been revoked in the database.
	token := s.addUser(5, func(u *models.User) { u.IsLecturer = true })
	s.userRepo.users[5].IsLecturer = false

	rec := s.request("/attendance/roster", token)
	s.Equal(http.StatusFound, rec.Code)
}

func (s *AuthMiddlewareSuite) TestMissingTokenRejected() {
	rec := s.request("/attendance/roster", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestDeletedAccountRejected() {
	token := s.addUser(6, func(u *models.User) { u.IsLecturer = true })
	delete(s.userRepo.users, 6)

	rec := s.request("/attendance/roster", token)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestNonAdminForbiddenOnAdminRoutes() {
	token := s.addUser(7, func(u *models.User) { u.IsLecturer = true })

	rec := s.request("/admin/users", token)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *AuthMiddlewareSuite) TestAdminAllowedOnAdminRoutes() {
	token := s.addUser(8, func(u *models.User) { u.IsSuperuser = true })

	rec := s.request("/admin/users", token)
	s.Equal(http.StatusOK, rec.Code)
}
