package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "0b6f3a1e-1d2c-4f5a-9b8e-7c6d5e4f3a2b",
		Username: "chai",
		Email:    "chai@example.com",
	}
}

func TestGeneratePairRoundTrip(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	pair, err := m.GeneratePair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	accessClaims, err := m.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testUser().ID, accessClaims.Subject)
	assert.Equal(t, "chai", accessClaims.Username)
	assert.Equal(t, "chai@example.com", accessClaims.Email)

	refreshClaims, err := m.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, testUser().ID, refreshClaims.Subject)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	pair, err := m.GeneratePair(testUser())
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = m.VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "secret-a", time.Hour, time.Hour)
	verifier := NewTokenManager("secret-b", "secret-b", time.Hour, time.Hour)

	pair, err := issuer.GeneratePair(testUser())
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	pair, err := m.GeneratePair(testUser())
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Hour, time.Hour)

	_, err := m.VerifyAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestHashTokenIsStableAndOpaque(t *testing.T) {
	digest := HashToken("some-refresh-token")

	assert.Equal(t, HashToken("some-refresh-token"), digest)
	assert.NotEqual(t, HashToken("another-token"), digest)
	assert.Len(t, digest, 64)
	assert.NotContains(t, digest, "some-refresh-token")
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("chai aur code")
	require.NoError(t, err)
	assert.NotEqual(t, "chai aur code", hash)

	assert.True(t, CheckPassword(hash, "chai aur code"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
