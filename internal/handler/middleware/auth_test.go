//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/middleware"
	"hotel-booking/internal/pkg/cookie"
	"hotel-booking/internal/pkg/jwt"
	"hotel-booking/internal/usecase"
	cmnhttptest "hotel-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := jwt.NewService("middleware-secret", "hotel-booking")
	mw := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))

	r := gin.New()
	r.Use(mw.RequireAuth())
	r.GET("/me", func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "role": actor.Role.String()})
	})
	r.GET("/admin", mw.RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, svc
}

func TestRequireAuth(t *testing.T) {
	r, svc := newAuthRouter(t)

	t.Run("正常系: Bearerトークン", func(t *testing.T) {
		id := uuid.New()
		token, err := svc.GenerateToken(id, user.RoleGuest, time.Hour)
		require.NoError(t, err)

		rec := cmnhttptest.PerformRequest(t, r, http.MethodGet, "/me", nil, token)

		var body map[string]string
		cmnhttptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, id.String(), body["id"])
		assert.Equal(t, "guest", body["role"])
	})

	t.Run("正常系: Cookieのトークンを優先", func(t *testing.T) {
		id := uuid.New()
		token, err := svc.GenerateToken(id, user.RoleAdmin, time.Hour)
		require.NoError(t, err)
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: token}}

		rec := cmnhttptest.PerformRequestWithCookies(t, r, http.MethodGet, "/me", nil, cookies, "garbage")

		var body map[string]string
		cmnhttptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, id.String(), body["id"])
	})

	t.Run("異常系: トークンなし", func(t *testing.T) {
		rec := cmnhttptest.PerformRequest(t, r, http.MethodGet, "/me", nil, "")

		cmnhttptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("異常系: 期限切れトークン", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), user.RoleGuest, -time.Minute)
		require.NoError(t, err)

		rec := cmnhttptest.PerformRequest(t, r, http.MethodGet, "/me", nil, token)

		cmnhttptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func TestRequireRole(t *testing.T) {
	r, svc := newAuthRouter(t)

	t.Run("正常系: 管理者", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), user.RoleAdmin, time.Hour)
		require.NoError(t, err)

		rec := cmnhttptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, token)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("異常系: ゲストは403", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), user.RoleGuest, time.Hour)
		require.NoError(t, err)

		rec := cmnhttptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, token)

		cmnhttptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})
}
