package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"wbsplanner/internal/model"
	"wbsplanner/internal/repository"
	"wbsplanner/pkg/util"
)

type AuthService struct {
	users     UserStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthService(users UserStore, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login checks credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}
	if !util.CheckPassword(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredential
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	token, err := util.GenerateJWT(u.ID, string(u.Role), s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in", zap.Int("user_id", u.ID), zap.String("role", string(u.Role)))
	return &model.LoginResponse{AccessToken: token, TokenType: "bearer", User: *u}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	return u, notFound(err)
}

// SeedAdmin creates a system_admin account when the users table is empty.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password, email string) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if password == "" {
		return errors.New("seed admin password is empty")
	}
	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}
	u := &model.User{
		Username:     username,
		Email:        email,
		FullName:     "Administrator",
		Role:         model.RoleSystemAdmin,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return err
	}
	s.logger.Info("Seeded admin user", zap.String("username", username))
	return nil
}
