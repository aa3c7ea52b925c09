package redis

import "fmt"

// KeyBuilder builds environment-prefixed Redis keys so that staging and
// production can share a Redis instance without colliding
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a key builder for the given environment
func NewKeyBuilder(environment string) *KeyBuilder {
	if environment == "" {
		environment = "production"
	}
	return &KeyBuilder{prefix: environment}
}

// SessionKey returns the key holding a user's refresh token digest
func (kb *KeyBuilder) SessionKey(userID string) string {
	return fmt.Sprintf("%s:session:%s", kb.prefix, userID)
}
