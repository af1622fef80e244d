package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankhive/bankcore/config"
	"github.com/bankhive/bankcore/internal/fixtures"
	"github.com/bankhive/bankcore/pkg/service/auth"
	"github.com/bankhive/bankcore/pkg/service/user"
)

var jwtCfg = config.Jwt{Secret: "test-secret", Expiry: time.Hour}

func TestLogin(t *testing.T) {
	uow, _ := fixtures.NewTestUoW(t)
	svc := auth.NewService(uow, jwtCfg, slog.New(slog.DiscardHandler))
	userSvc := user.NewService(uow, slog.New(slog.DiscardHandler))

	registered, err := userSvc.Register(context.Background(), user.RegisterInput{
		Name:     "Jamie",
		Surname:  "Doe",
		Email:    "jamie@bank.test",
		Password: "s3cret!",
	})
	require.NoError(t, err)

	signed, err := svc.Login(context.Background(), "jamie@bank.test", "s3cret!")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(jwtCfg.Secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "jamie@bank.test", claims["email"])
	assert.Equal(t, "CLIENT", claims["role"])

	id, ok := auth.UserIDFromClaims(claims)
	require.True(t, ok)
	assert.Equal(t, registered.ID, id)
}

func TestLogin_Rejections(t *testing.T) {
	uow, _ := fixtures.NewTestUoW(t)
	svc := auth.NewService(uow, jwtCfg, slog.New(slog.DiscardHandler))
	userSvc := user.NewService(uow, slog.New(slog.DiscardHandler))

	_, err := userSvc.Register(context.Background(), user.RegisterInput{
		Name:     "Jamie",
		Surname:  "Doe",
		Email:    "jamie@bank.test",
		Password: "s3cret!",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "jamie@bank.test", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@bank.test", "s3cret!")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestUserIDFromClaims(t *testing.T) {
	id, ok := auth.UserIDFromClaims(jwt.MapClaims{"user_id": float64(7)})
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	_, ok = auth.UserIDFromClaims(jwt.MapClaims{"user_id": "7"})
	assert.False(t, ok)

	_, ok = auth.UserIDFromClaims(jwt.MapClaims{})
	assert.False(t, ok)
}
