package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/hoteldesk/internal/auth/domain"
	"github.com/smallbiznis/hoteldesk/internal/auth/repository"
	"github.com/smallbiznis/hoteldesk/internal/auth/token"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (authdomain.Service, *clock.FakeClock) {
	t.Helper()
	db := dbtest.Open(t, &authdomain.User{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))
	issuer := token.NewIssuer(config.Config{AuthJWTSecret: "test-secret", AuthTokenTTL: 7 * 24 * time.Hour}, clk)

	return New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Issuer: issuer,
		Clock:  clk,
	}), clk
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "alice@example.com", Password: "correct-password"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, authdomain.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, authdomain.LoginRequest{Email: "nobody@example.com", Password: "correct-password"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestLoginIssuesSessionToken(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: " Bob@Example.com ", Password: "strong-password", Role: authdomain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "bob", user.Name)

	res, err := svc.Login(ctx, authdomain.LoginRequest{Email: "BOB@example.com", Password: "strong-password"})
	require.NoError(t, err)
	assert.Equal(t, clk.Now().Add(7*24*time.Hour), res.ExpiresAt)

	principal, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), principal.ID)
	assert.Equal(t, authdomain.RoleAdmin, principal.Role)

	clk.Advance(8 * 24 * time.Hour)
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, authdomain.ErrSessionExpired)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "x", Password: "long-enough"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidEmail)
	_, err = svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "a@b.test", Password: "short"})
	assert.ErrorIs(t, err, authdomain.ErrWeakPassword)
	_, err = svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "a@b.test", Password: "long-enough", Role: "owner"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidRole)

	_, err = svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "a@b.test", Password: "long-enough"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "A@b.test", Password: "long-enough"})
	assert.ErrorIs(t, err, authdomain.ErrUserExists)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "c@b.test", Password: "first-password"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID.String(), authdomain.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "second-password"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
	err = svc.ChangePassword(ctx, user.ID.String(), authdomain.ChangePasswordRequest{CurrentPassword: "first-password", NewPassword: "short"})
	assert.ErrorIs(t, err, authdomain.ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(ctx, user.ID.String(), authdomain.ChangePasswordRequest{CurrentPassword: "first-password", NewPassword: "second-password"}))
	_, err = svc.Login(ctx, authdomain.LoginRequest{Email: "c@b.test", Password: "first-password"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, authdomain.LoginRequest{Email: "c@b.test", Password: "second-password"})
	assert.NoError(t, err)
}

func TestDeleteUserGuards(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "admin@b.test", Password: "long-enough", Role: authdomain.RoleAdmin})
	require.NoError(t, err)
	manager, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "mgr@b.test", Password: "long-enough"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.ID.String(), admin.ID.String()), authdomain.ErrCannotDeleteSelf)
	assert.ErrorIs(t, svc.DeleteUser(ctx, manager.ID.String(), admin.ID.String()), authdomain.ErrLastAdmin)

	require.NoError(t, svc.DeleteUser(ctx, admin.ID.String(), manager.ID.String()))
	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)
}

func TestEnsureAdminRunsOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, authdomain.CreateUserRequest{}))
	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	req := authdomain.CreateUserRequest{Email: "root@hotel.test", Password: "bootstrap-pass", Name: "Root"}
	require.NoError(t, svc.EnsureAdmin(ctx, req))
	require.NoError(t, svc.EnsureAdmin(ctx, req))

	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, authdomain.RoleAdmin, users[0].Role)
}
