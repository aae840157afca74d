//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/pkg/jwt"
	"hotel-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("test-secret", "hotel-booking")
	validator := usecase.NewTokenValidator(svc)

	t.Run("正常系: 管理者トークンからActorを復元", func(t *testing.T) {
		id := uuid.New()
		token, err := svc.GenerateToken(id, user.RoleAdmin, time.Hour)
		require.NoError(t, err)

		actor, err := validator.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, id, actor.ID)
		assert.True(t, actor.IsAdmin())
	})

	t.Run("異常系: 別の秘密鍵で署名されたトークン", func(t *testing.T) {
		other := jwt.NewService("other-secret", "hotel-booking")
		token, err := other.GenerateToken(uuid.New(), user.RoleGuest, time.Hour)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("異常系: 期限切れトークン", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), user.RoleGuest, -time.Minute)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)

		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}
