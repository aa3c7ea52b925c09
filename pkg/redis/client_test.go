package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectError bool
	}{
		{name: "invalid URL", url: "invalid://url", expectError: true},
		{name: "empty URL", url: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test", zap.NewNop())
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, client)
			}
		})
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetRefreshToken(ctx, "user-1", "digest-abc", time.Hour))

	got, err := client.GetRefreshToken(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "digest-abc", got)
}

func TestGetRefreshTokenMissing(t *testing.T) {
	_, client := setupTestRedis(t)

	_, err := client.GetRefreshToken(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteRefreshTokenRevokesSession(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetRefreshToken(ctx, "user-1", "digest-abc", time.Hour))
	require.NoError(t, client.DeleteRefreshToken(ctx, "user-1"))

	_, err := client.GetRefreshToken(ctx, "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRefreshTokenExpires(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetRefreshToken(ctx, "user-1", "digest-abc", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := client.GetRefreshToken(ctx, "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestKeyBuilderIsolatesEnvironments(t *testing.T) {
	prod := NewKeyBuilder("production")
	stage := NewKeyBuilder("staging")

	assert.NotEqual(t, prod.SessionKey("u1"), stage.SessionKey("u1"))
	assert.Equal(t, "production:session:u1", prod.SessionKey("u1"))
}
