package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager mints and verifies the guardian access/refresh token pair
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a token manager with the signing secret and lifetimes
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type tokenClaims struct {
	Type string `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// AccessTTL returns the access token lifetime
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// MintAccess creates a short-lived access token for a guardian
func (m *TokenManager) MintAccess(guardianID string) (string, error) {
	return m.mint(guardianID, "access", m.accessTTL)
}

// MintRefresh creates a long-lived refresh token for a guardian
func (m *TokenManager) MintRefresh(guardianID string) (string, error) {
	return m.mint(guardianID, "refresh", m.refreshTTL)
}

func (m *TokenManager) mint(guardianID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   guardianID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature, expiry and token type, returning the guardian id
func (m *TokenManager) Verify(tokenString, expectedType string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || claims.Type != expectedType || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
