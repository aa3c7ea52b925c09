package domain

import "time"

// Playlist is an owned, ordered set of video references. Membership has set
// semantics: adding a duplicate or removing a non-member is a no-op.
type Playlist struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Owner       *OwnerInfo `json:"owner,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Videos      []*Video   `json:"videos,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PlaylistSummary is the list-by-user projection: first video's thumbnail
// plus a member count
type PlaylistSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	TotalVideos int       `json:"totalVideos"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistRequest carries playlist create/update fields
type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
