package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lampstore/internal/model"
	"lampstore/internal/repository"
)

const testJWTSecret = "test-jwt-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authEcho() *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"user_id": c.Get(ContextUserID).(string),
		})
	}, Auth(testJWTSecret))
	return e
}

func TestAuth_MissingHeader(t *testing.T) {
	e := authEcho()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := authEcho()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	e := authEcho()

	token := signedToken(t, "some-other-secret", jwt.MapClaims{"sub": "user-1"})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := authEcho()

	token := signedToken(t, testJWTSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	e := authEcho()

	token := signedToken(t, testJWTSecret, jwt.MapClaims{
		"sub":   "user-1",
		"email": "ada@example.com",
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"user-1"`)
}

func TestAdminOnly(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.UserRole{}))
	require.NoError(t, db.Create(&model.UserRole{UserID: "admin-1", Role: "admin", IsAdmin: true}).Error)

	roleRepo := repository.NewUserRoleRepository(db)

	e := echo.New()
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, Auth(testJWTSecret), AdminOnly(roleRepo))

	cases := []struct {
		name     string
		userID   string
		wantCode int
	}{
		{name: "admin user", userID: "admin-1", wantCode: http.StatusOK},
		{name: "plain user", userID: "user-1", wantCode: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := signedToken(t, testJWTSecret, jwt.MapClaims{"sub": tc.userID})
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestServiceKey(t *testing.T) {
	e := echo.New()
	e.POST("/internal", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, ServiceKey("svc-secret"))

	req := httptest.NewRequest(http.MethodPost, "/internal", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer svc-secret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/internal", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer wrong")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
