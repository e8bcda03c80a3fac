package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/domlearn/backend/internal/auth"
	"github.com/domlearn/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenManager issues and validates capability tokens
type TokenManager interface {
	// Generate issues a token for the given subject
	Generate(subject string) (string, auth.Claims, error)
	// Validate checks a token and returns its claims
	Validate(token string) (auth.Claims, error)
}

// RevocationStore remembers tokens revoked by logout
type RevocationStore interface {
	// Revoke marks the token id as revoked for ttl
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked checks if the token id was revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService handles the single admin identity
type AuthService struct {
	tokens       TokenManager
	revocations  RevocationStore
	login        string
	passwordHash []byte
	logger       *zap.Logger
}

// NewAuthService creates a new auth service.
// passwordHash is the bcrypt hash of the admin password.
func NewAuthService(tokens TokenManager, revocations RevocationStore, login, passwordHash string, logger *zap.Logger) *AuthService {
	return &AuthService{
		tokens:       tokens,
		revocations:  revocations,
		login:        login,
		passwordHash: []byte(passwordHash),
		logger:       logger,
	}
}

// Login checks the admin credentials and issues a capability token
func (s *AuthService) Login(ctx context.Context, login, password string) (*models.Session, error) {
	if login == "" || password == "" {
		return nil, models.NewValidationError(models.KindMissingField, "login and password are required")
	}

	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(s.login)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !loginOK || passwordErr != nil {
		s.logger.Warn("failed admin login", zap.String("login", login))
		return nil, models.NewError(models.KindUnauthorized, "invalid login or password")
	}

	token, claims, err := s.tokens.Generate(s.login)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("admin logged in", zap.String("jti", claims.ID))
	return &models.Session{Token: token, ExpiresAt: claims.ExpiresAt}, nil
}

// Authorize returns an Unauthorized error unless token is a valid, unrevoked admin capability
func (s *AuthService) Authorize(ctx context.Context, token string) error {
	if token == "" {
		return models.NewError(models.KindUnauthorized, "authentication required")
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return models.WrapError(models.KindUnauthorized, err, "invalid or expired token")
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return models.NewError(models.KindUnauthorized, "token has been revoked")
	}
	return nil
}

// Logout revokes the token until it expires. Invalid tokens need no revocation.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt)); err != nil {
		return err
	}
	s.logger.Info("admin logged out", zap.String("jti", claims.ID))
	return nil
}
