package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"devconnector/internal/model"
)

// TokenClaims binds the authenticated subject into a signed token.
// Subject carries the user id; ID (jti) makes every issued token unique
// even when two are minted within the same second.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 bearer tokens. There is
// no revocation list: a token stays valid until its expiry passes.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given subject, valid for the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the subject user id.
// Failures map to model.ErrTokenExpired or model.ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &TokenClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", model.ErrTokenExpired
		}
		return "", model.ErrTokenInvalid
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", model.ErrTokenInvalid
	}

	return claims.Subject, nil
}
