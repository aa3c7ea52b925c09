package domain

import "time"

// Comment represents a comment on a video
type Comment struct {
	ID        string     `json:"id"`
	VideoID   string     `json:"videoId"`
	OwnerID   string     `json:"ownerId"`
	Owner     *OwnerInfo `json:"owner,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CommentWithLikes is a comment decorated with like aggregates for the
// requesting user
type CommentWithLikes struct {
	*Comment
	TotalLikes int64 `json:"totalLikes"`
	IsLiked    bool  `json:"isLiked"`
}
