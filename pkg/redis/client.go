package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client wraps go-redis and acts as the session store for refresh tokens.
// Only the SHA-256 digest of the current refresh token is kept per user,
// with a TTL equal to the refresh token lifetime. Deleting the key revokes
// the session.
type Client struct {
	rdb        *redis.Client
	keyBuilder *KeyBuilder
	log        *zap.Logger
}

// ErrSessionNotFound is returned when no refresh token is stored for a user
var ErrSessionNotFound = fmt.Errorf("session not found")

// NewClient creates a new Redis client
func NewClient(redisURL string, environment string, log *zap.Logger) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = 50
	opts.MinIdleConns = 5
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, keyBuilder: NewKeyBuilder(environment), log: log}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// SetRefreshToken stores the refresh token digest for a user
func (c *Client) SetRefreshToken(ctx context.Context, userID, digest string, ttl time.Duration) error {
	key := c.keyBuilder.SessionKey(userID)

	start := time.Now()
	err := c.rdb.Set(ctx, key, digest, ttl).Err()
	dur := time.Since(start)

	if err != nil {
		c.log.Info("redis_session_set",
			zap.String("user_id", userID),
			zap.Duration("duration", dur),
			zap.Error(err))
		return err
	}

	c.log.Debug("redis_session_set",
		zap.String("user_id", userID),
		zap.Duration("duration", dur))
	return nil
}

// GetRefreshToken returns the stored refresh token digest for a user
func (c *Client) GetRefreshToken(ctx context.Context, userID string) (string, error) {
	key := c.keyBuilder.SessionKey(userID)

	start := time.Now()
	val, err := c.rdb.Get(ctx, key).Result()
	dur := time.Since(start)

	if err == redis.Nil {
		c.log.Debug("redis_session_miss",
			zap.String("user_id", userID),
			zap.Duration("duration", dur))
		return "", ErrSessionNotFound
	}
	if err != nil {
		c.log.Info("redis_session_get",
			zap.String("user_id", userID),
			zap.Duration("duration", dur),
			zap.Error(err))
		return "", err
	}

	c.log.Debug("redis_session_get",
		zap.String("user_id", userID),
		zap.Duration("duration", dur))
	return val, nil
}

// DeleteRefreshToken revokes a user's session
func (c *Client) DeleteRefreshToken(ctx context.Context, userID string) error {
	key := c.keyBuilder.SessionKey(userID)

	start := time.Now()
	err := c.rdb.Del(ctx, key).Err()
	dur := time.Since(start)

	c.log.Debug("redis_session_del",
		zap.String("user_id", userID),
		zap.Duration("duration", dur),
		zap.Error(err))
	return err
}

// Health checks the Redis connection
func (c *Client) Health(ctx context.Context) error {
	start := time.Now()
	err := c.rdb.Ping(ctx).Err()
	dur := time.Since(start)
	if err != nil {
		c.log.Info("redis_ping", zap.Duration("duration", dur), zap.Error(err))
	} else {
		c.log.Debug("redis_ping", zap.Duration("duration", dur))
	}
	return err
}
