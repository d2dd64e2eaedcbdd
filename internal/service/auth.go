package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

// TokenStore persists hashed refresh tokens.  ConsumeRefresh atomically
// revokes an active token and returns its user id; an unknown, revoked or
// expired token yields sql.ErrNoRows.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error
	ConsumeRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

// AuthConfig holds token settings.
type AuthConfig struct {
	Secret         string
	AccessTTLMin   int
	RefreshTTLDays int
}

// AuthResult is returned by register, login and refresh.
type AuthResult struct {
	User         model.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresAt    time.Time  `json:"expiresAt"`
}

// invalidCredentials is shared by every login failure so callers cannot
// tell an unknown email from a wrong password.
const invalidCredentials = "invalid email or password"

// AuthService registers accounts and issues tokens.
type AuthService struct {
	users  *UserService
	tokens TokenStore
	hasher PasswordHasher
	cfg    AuthConfig

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users *UserService, tokens TokenStore, hasher PasswordHasher, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, cfg: cfg}
}

// Register creates a guest account and signs it in.
func (s *AuthService) Register(ctx context.Context, in model.CreateUserInput) (*AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, validationError("email and password are required")
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, validationError("firstName and lastName are required")
	}
	u, err := s.users.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// Login verifies credentials.  Unknown, soft-deleted and password-less
// accounts fail exactly like a wrong password.
func (s *AuthService) Login(ctx context.Context, in model.LoginInput) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// spend comparable time on unknown emails
		s.hasher.Verify(s.placeholderHash(), in.Password)
		return nil, newError(ErrAuthentication, invalidCredentials)
	}
	if u.PasswordHash == "" || !s.hasher.Verify(u.PasswordHash, in.Password) || u.IsDeleted() {
		return nil, newError(ErrAuthentication, invalidCredentials)
	}
	out := u.WithoutPassword()
	return s.issue(ctx, &out)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*AuthResult, error) {
	if raw == "" {
		return nil, validationError("refreshToken is required")
	}
	hash := utils.HashRefreshRaw(raw)
	userID, err := s.tokens.ConsumeRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, newError(ErrAuthentication, "invalid refresh token")
		}
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	u, err := s.users.FindOne(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrAuthentication, "invalid refresh token")
		}
		return nil, err
	}
	if u.IsDeleted() {
		return nil, newError(ErrAuthentication, "invalid refresh token")
	}
	return s.issue(ctx, u)
}

// Logout revokes the presented refresh token.  Without one, every token of
// userID is revoked.
func (s *AuthService) Logout(ctx context.Context, raw, userID string) error {
	if raw != "" {
		if err := s.tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw)); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
		return nil
	}
	if userID == "" {
		return validationError("refreshToken is required")
	}
	if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

func (s *AuthService) issue(ctx context.Context, u *model.User) (*AuthResult, error) {
	access, err := utils.NewAccessToken(s.cfg.Secret, u.ID, u.Email, string(u.Role), s.cfg.AccessTTLMin)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := utils.NewRefreshToken(s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &AuthResult{
		User:         u.WithoutPassword(),
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		ExpiresAt:    access.Exp,
	}, nil
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("placeholder-password-Aa1!")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
