package service

import (
	"context"
	"io"
	"time"
)

// SessionStore persists refresh token digests keyed by user. The Redis
// client in pkg/redis is the production implementation.
type SessionStore interface {
	SetRefreshToken(ctx context.Context, userID, digest string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID string) (string, error)
	DeleteRefreshToken(ctx context.Context, userID string) error
}

// MediaStorage stores media objects in an external object store. Upload
// returns the public URL and the object key; Delete takes the key.
type MediaStorage interface {
	Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (string, string, error)
	Delete(ctx context.Context, key string) error
}

// Storage folders per asset kind
const (
	folderAvatars    = "avatars"
	folderCovers     = "covers"
	folderVideos     = "videos"
	folderThumbnails = "thumbnails"
)
