package service

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	kjwt "github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameFromContext(t *testing.T) {
	t.Run("missing claims", func(t *testing.T) {
		_, err := usernameFromContext(context.Background())
		assert.True(t, errors.IsUnauthorized(err))
	})

	t.Run("claims without username", func(t *testing.T) {
		ctx := kjwt.NewContext(context.Background(), jwt.MapClaims{"exp": 1.0})
		_, err := usernameFromContext(ctx)
		assert.True(t, errors.IsUnauthorized(err))
	})

	t.Run("valid claims", func(t *testing.T) {
		ctx := kjwt.NewContext(context.Background(), jwt.MapClaims{"username": "ada"})
		username, err := usernameFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ada", username)
	})
}
