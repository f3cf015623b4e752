package services

import (
	"context"
	"testing"

	"tipjar_backend/internal/config"
	"tipjar_backend/internal/models"
	"tipjar_backend/internal/services/dto"
	"tipjar_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(db)

	err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "Alice@Example.com",
		Username:    "Alice",
		DisplayName: "Alice the Artist",
		Password:    "super_secret_1",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, "username = ?", "alice").Error)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.UserRoleCreator, user.Role)
	assert.NotEqual(t, "super_secret_1", user.PasswordHash)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "super_secret_1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(db)

	req := &dto.RegisterRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "super_secret_1",
	}
	require.NoError(t, svc.Register(context.Background(), req))

	req2 := &dto.RegisterRequest{
		Email:       "alice@example.com",
		Username:    "alice2",
		DisplayName: "Alice Again",
		Password:    "super_secret_1",
	}
	err := svc.Register(context.Background(), req2)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(db)

	require.NoError(t, svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "super_secret_1",
	}))

	err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "other@example.com",
		Username:    "alice",
		DisplayName: "Impostor",
		Password:    "super_secret_1",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
}

func TestRegister_WeakPassword(t *testing.T) {
	db := newTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(db)

	err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "short",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(db)

	require.NoError(t, svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "super_secret_1",
	}))

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong_password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(db)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_BannedAccount(t *testing.T) {
	db := newTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(db)

	require.NoError(t, svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "super_secret_1",
	}))
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "alice").
		Update("status", models.UserStatusBanned).Error)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "super_secret_1",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestGetMe(t *testing.T) {
	db := newTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(db)

	require.NoError(t, svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Password:    "super_secret_1",
	}))

	var user models.User
	require.NoError(t, db.First(&user, "username = ?", "alice").Error)

	me, err := svc.GetMe(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	_, err = svc.GetMe(context.Background(), "missing-id")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
