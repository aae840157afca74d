//go:build unit

package api_test

import (
	"net/http"

	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	guestToken = "guest-token"
	adminToken = "admin-token"
)

var (
	testGuest = user.Actor{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Role: user.RoleGuest}
	testAdmin = user.Actor{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Role: user.RoleAdmin}
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// stands in for RequireAuth: the bearer value picks the actor
func fakeAuth(c *gin.Context) {
	switch c.GetHeader("Authorization") {
	case "Bearer " + guestToken:
		middleware.SetActor(c, testGuest)
	case "Bearer " + adminToken:
		middleware.SetActor(c, testAdmin)
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	c.Next()
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(fakeAuth)
	return r
}
