package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	AdminLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	// EnsureAdmin creates the admin account on first start.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Email must be free
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, newError(ErrAlreadyExists, "email already registered")
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         entity.RoleCustomer,
	}

	// 4. Save user, the unique index catches concurrent sign-ups
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, newError(ErrAlreadyExists, "email already registered")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("User registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	// 5. Auto login
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	if user.Role != entity.RoleCustomer {
		s.log.Warn("Admin account used on customer login", zap.Int64("user_id", user.ID))
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))
	return s.issue(user)
}

func (s *authService) AdminLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	if user.Role != entity.RoleAdmin {
		s.log.Warn("Non-admin tried admin login", zap.Int64("user_id", user.ID))
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}

	s.log.Info("Admin logged in", zap.Int64("user_id", user.ID))
	return s.issue(user)
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.log.Warn("No admin account configured")
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if existing != nil {
		if existing.Role != entity.RoleAdmin {
			s.log.Warn("Configured admin email belongs to a customer", zap.String("email", email))
		}
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashed,
		Role:         entity.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	s.log.Info("Admin account created", zap.String("email", email))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) authenticate(ctx context.Context, req *request.LoginRequest) (*entity.User, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}

	return user, nil
}

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, expiresAt, err := utils.GenerateToken(s.config.JWT.Secret, ttl, user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return response.AuthToResponse(user, token, expiresAt), nil
}
