package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
	"wbsplanner/pkg/util"
)

func TestSeedAdminAndLogin(t *testing.T) {
	users := memUsers{newMemStore()}
	svc := NewAuthService(users, "secret", time.Hour, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "admin", "admin123", "admin@example.com"))
	// second call is a no-op
	require.NoError(t, svc.SeedAdmin(ctx, "other", "x", "o@example.com"))
	n, _ := users.Count(ctx)
	assert.Equal(t, 1, n)

	resp, err := svc.Login(ctx, model.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, model.RoleSystemAdmin, resp.User.Role)

	claims, err := util.ParseJWT(resp.AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	_, err = svc.Login(ctx, model.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
	_, err = svc.Login(ctx, model.LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	me, err := svc.CurrentUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)
}

func TestLoginInactiveUser(t *testing.T) {
	users := memUsers{newMemStore()}
	hash, err := util.HashPassword("pw")
	require.NoError(t, err)
	require.NoError(t, users.CreateUser(context.Background(), &model.User{Username: "bob", PasswordHash: hash, Role: model.RoleViewer}))

	svc := NewAuthService(users, "secret", time.Hour, zap.NewNop())
	_, err = svc.Login(context.Background(), model.LoginRequest{Username: "bob", Password: "pw"})
	assert.ErrorIs(t, err, ErrInactiveUser)
}
