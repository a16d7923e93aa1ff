package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/server/adapters/http/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID string, secret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newProtectedApp() *fiber.App {
	fiberApp := fiber.New()
	fiberApp.Use(middleware.NewAuthMiddleware(testSecret))
	fiberApp.Get("/", func(ctx fiber.Ctx) error {
		userID, _ := ctx.Locals(middleware.LocalsUserID).(string)
		return ctx.SendString(userID)
	})
	return fiberApp
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{name: "valid token", header: "", expectedStatus: http.StatusOK, expectedBody: "user-1"},
		{name: "no header", header: "none", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fiberApp := newProtectedApp()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			switch tt.header {
			case "":
				req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", testSecret))
			case "none":
			default:
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := fiberApp.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBody, string(body))
			}
		})
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	fiberApp := newProtectedApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", "other-secret"))

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	fiberApp := newProtectedApp()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	fiberApp := fiber.New()
	fiberApp.Use(middleware.NewOptionalAuthMiddleware(testSecret))
	fiberApp.Get("/", func(ctx fiber.Ctx) error {
		userID, _ := ctx.Locals(middleware.LocalsUserID).(string)
		return ctx.SendString(userID)
	})

	// Без токена запрос проходит как анонимный.
	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Невалидный токен тоже трактуется как анонимный.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = fiberApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// С валидным токеном виден пользователь.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", testSecret))
	resp, err = fiberApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
