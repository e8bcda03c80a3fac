// Package auth issues and checks the admin capability token
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTypeAdmin = "admin"

// Claims is the validated content of a capability token
type Claims struct {
	ID        string
	Subject   string
	ExpiresAt time.Time
}

// TokenGenerator signs and validates admin capability tokens (HS256 JWT)
type TokenGenerator struct {
	secret string
	expiry time.Duration
	now    func() time.Time
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, expiry time.Duration) *TokenGenerator {
	return &TokenGenerator{secret: secret, expiry: expiry, now: time.Now}
}

// Expiry returns the lifetime of issued tokens
func (tg *TokenGenerator) Expiry() time.Duration {
	return tg.expiry
}

// Generate issues a capability token for the admin identified by subject
func (tg *TokenGenerator) Generate(subject string) (string, Claims, error) {
	issued := tg.now()
	c := Claims{
		ID:        uuid.NewString(),
		Subject:   subject,
		ExpiresAt: issued.Add(tg.expiry),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":  c.ID,
		"sub":  c.Subject,
		"exp":  c.ExpiresAt.Unix(),
		"iat":  issued.Unix(),
		"type": tokenTypeAdmin,
	})
	signed, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", Claims{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, c, nil
}

// Validate checks signature, expiry and type of a capability token
func (tg *TokenGenerator) Validate(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	}, jwt.WithTimeFunc(tg.now), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("token is invalid")
	}
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeAdmin {
		return Claims{}, fmt.Errorf("token is not an admin token")
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return Claims{}, fmt.Errorf("jti not found in token")
	}
	sub, _ := claims["sub"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, fmt.Errorf("exp not found in token")
	}

	return Claims{ID: jti, Subject: sub, ExpiresAt: exp.Time}, nil
}
