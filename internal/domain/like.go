package domain

import "time"

// Like is a join entity referencing exactly one of a video or a comment.
// At most one like exists per (user, target) pair; the storage layer
// enforces that with unique indexes.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	VideoID   *string   `json:"videoId,omitempty"`
	CommentID *string   `json:"commentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
