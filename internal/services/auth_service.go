package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bic-devsphere/devsphere-backend/internal/auth"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

var (
	// ErrSignupClosed: admin signup is one-shot, blocked once an admin exists.
	ErrSignupClosed       = errors.New("admin signup is closed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until the access token expires
}

type AuthService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewAuthService(users repo.Users, tm *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tm: tm}
}

func (s *AuthService) Signup(ctx context.Context, email, password string, memberID *string) (models.User, TokenPair, error) {
	admins, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if admins > 0 {
		return models.User{}, TokenPair{}, ErrSignupClosed
	}

	u := models.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Role:     models.RoleAdmin,
		MemberID: memberID,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, TokenPair{}, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	u.PasswordHash = hash

	u, err = s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	pair, err := s.tokens(u)
	return u, pair, err
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (models.User, TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.tokens(u)
	return u, pair, err
}

func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return TokenPair{}, ErrInvalidCredentials
	}
	access, refresh, exp, err := s.tm.GeneratePair(claims.UserID, claims.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: int64(time.Until(exp).Seconds())}, nil
}

func (s *AuthService) tokens(u models.User) (TokenPair, error) {
	access, refresh, exp, err := s.tm.GeneratePair(u.ID, string(u.Role))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: int64(time.Until(exp).Seconds())}, nil
}
