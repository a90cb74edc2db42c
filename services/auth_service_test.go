package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
)

func newAuthService(t *testing.T) *AuthService {
	return NewAuthService(AuthServiceOptions{
		DB:     newTestDB(t),
		Tokens: NewTokenManager("test-secret", time.Hour),
	})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterRequest{Name: "Front Desk", Email: "Desk@Hotel.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "desk@hotel.com", user.Email)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "desk@hotel.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, user.ID, login.User.ID)

	info, err := svc.ParseToken("Bearer " + login.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.UserId)
	assert.Equal(t, models.UserRoleUser, info.Role)

	me, err := svc.Me(ctx, info.UserId)
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", me.Name)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@hotel.com", Password: "123"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))
	assert.Equal(t, "password must be at least 6 characters", apperrors.GetAppError(err).Message)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@hotel.com", Password: "123456", Role: "OWNER"})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@hotel.com", Password: "123456", Role: models.UserRoleAdmin})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "B", Email: "A@hotel.com", Password: "123456"})
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.Kind(err))
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@hotel.com", Password: "123456"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@hotel.com", Password: "wrong-pass"})
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.Kind(err))

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@hotel.com", Password: "123456"})
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.Kind(err))
}

func TestEnsureAdmin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Administrator", "admin@hotel.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "Administrator", "admin@hotel.com", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@hotel.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, login.User.Role)
}

func TestTokenManager(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	token, expiresAt, err := tokens.GenerateToken(UserInfo{UserId: 7, Role: models.UserRoleAdmin})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	info, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), info.UserId)

	_, err = NewTokenManager("other-secret", time.Hour).ParseToken(token)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.Kind(err))

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateToken(UserInfo{UserId: 7, Role: models.UserRoleUser})
	require.NoError(t, err)
	_, err = tokens.ParseToken(old)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.Kind(err))

	_, err = tokens.ParseToken("not.a.token")
	assert.Error(t, err)
	_, err = tokens.ParseToken("")
	assert.Error(t, err)
}
