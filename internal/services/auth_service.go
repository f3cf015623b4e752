package services

import (
	"context"
	"errors"
	"strings"

	"tipjar_backend/internal/auth"
	"tipjar_backend/internal/logger"
	"tipjar_backend/internal/models"
	"tipjar_backend/internal/repositories"
	"tipjar_backend/internal/services/dto"
	"tipjar_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) AuthService {
	return &authService{db: db}
}

// Register provisions a creator account. Supporter accounts are never
// registered here; they are auto-provisioned by the support flow.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	users := repositories.NewUserRepository(s.db.WithContext(ctx))

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		DisplayName:  req.DisplayName,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleCreator,
		Status:       models.UserStatusActive,
	}

	if err := users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			if _, lookupErr := users.FindByEmail(user.Email); lookupErr == nil {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.ErrUsernameAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "creator registered", "user_id", user.ID, "username", user.Username)
	return nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	users := repositories.NewUserRepository(s.db.WithContext(ctx))

	user, err := users.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusBanned {
		return nil, apperrors.NewForbiddenError("Account is banned")
	}

	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	users := repositories.NewUserRepository(s.db.WithContext(ctx))

	user, err := users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "auth", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		Role:        string(user.Role),
		IsVerified:  user.IsVerified,
	}
}
