// Package auth holds the token service and the password hashing primitive.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dfreire/financas/internal/user"
)

// TokenService issues and verifies the signed, time-boxed bearer tokens the
// API authenticates with. Tokens carry the user's email as subject; all state
// lives in the token itself.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

func NewTokenService(secret string, expirationMinutes int) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		validity: time.Duration(expirationMinutes) * time.Minute,
	}
}

// Issue builds an HS256-signed token expiring after the configured validity
// window.
func (s *TokenService) Issue(u *user.User) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   u.Email,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// Claims decodes the token and verifies its signature and expiry.
func (s *TokenService) Claims(token string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	return &claims, nil
}

// Valid reports whether the token decodes, verifies and has not expired.
// Every decode failure yields false, not only expiry.
func (s *TokenService) Valid(token string) bool {
	_, err := s.Claims(token)
	return err == nil
}

// Subject returns the email the token was issued for. Callers are expected
// to have checked Valid first.
func (s *TokenService) Subject(token string) (string, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}
