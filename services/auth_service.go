package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
	"hotel-manager/services/logger"
	"hotel-manager/validator"
)

type AuthService struct {
	db     *gorm.DB
	tokens *TokenManager
	logger logger.Logger
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Tokens *TokenManager
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &AuthService{db: opts.DB, tokens: opts.Tokens, logger: opts.Logger}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Register creates a staff account. Role defaults to USER.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&n).Error; err != nil {
		return nil, apperrors.DBError("failed to check email", err)
	}
	if n > 0 {
		return nil, apperrors.Conflict("email is already registered", apperrors.ErrDuplicate)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.DBError("failed to hash password", err)
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     models.UserRoleUser,
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, mapWriteError("user", err)
	}
	s.logger.Info("user %d registered with role %s", user.ID, user.Role)
	return &user, nil
}

// Login checks the password and issues an access token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, apperrors.DBError("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Info("failed login for user %d", user.ID)
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	token, expiresAt, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return nil, apperrors.DBError("failed to sign token", err)
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user", userID)
	}
	if err != nil {
		return nil, apperrors.DBError("failed to load user", err)
	}
	return &user, nil
}

// ParseToken resolves a bearer token to the user it was issued for
func (s *AuthService) ParseToken(token string) (*UserInfo, error) {
	return s.tokens.ParseToken(token)
}

// EnsureAdmin creates the admin account if no user has that email yet. It reports whether one was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, apperrors.DBError("failed to check email", err)
	}
	if n > 0 {
		return false, nil
	}
	_, err := s.Register(ctx, dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.UserRoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
