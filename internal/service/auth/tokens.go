package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vidtube/internal/domain"
	"vidtube/pkg/errors"
)

// Claims are the JWT claims carried by both access and refresh tokens
type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the HS256 access/refresh token pair.
// The two token kinds use distinct secrets so one can never stand in for
// the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager creates a token manager
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL returns the refresh token lifetime, which doubles as the
// session store TTL
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// GeneratePair issues a fresh access/refresh token pair for a user
func (m *TokenManager) GeneratePair(user *domain.User) (*domain.TokenPair, error) {
	access, err := m.sign(user, m.accessSecret, m.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := m.sign(user, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken validates an access token and returns its claims
func (m *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return m.verify(token, m.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns its claims
func (m *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return m.verify(token, m.refreshSecret)
}

func (m *TokenManager) sign(user *domain.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *TokenManager) verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewUnauthorizedError("Invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.NewUnauthorizedError("Token carries no subject")
	}
	return claims, nil
}

// HashToken returns the hex SHA-256 digest of a token. Only digests are
// kept in the session store, never raw refresh tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
