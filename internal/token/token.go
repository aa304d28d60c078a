// Package token issues and verifies signed session tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid is returned for malformed or tampered tokens.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned for tokens past their expiry.
	ErrExpired = errors.New("token expired")
)

// Claims carries the identity encoded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Service signs and verifies session tokens with an HMAC secret.
type Service struct {
	secret   []byte
	lifetime time.Duration
}

// New creates a token service. Tokens expire after lifetime.
func New(secret []byte, lifetime time.Duration) *Service {
	return &Service{secret: secret, lifetime: lifetime}
}

// Issue signs a token for the given identity.
func (s *Service) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	})

	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	if !token.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
