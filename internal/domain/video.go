package domain

import "time"

// Video represents a published or draft video. Storage keys stay internal;
// clients only ever see URLs.
type Video struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"ownerId"`
	Owner        *OwnerInfo `json:"owner,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	VideoURL     string     `json:"videoFile"`
	VideoKey     string     `json:"-"`
	ThumbnailURL string     `json:"thumbnailFile"`
	ThumbnailKey string     `json:"-"`
	Duration     float64    `json:"duration"`
	Views        int64      `json:"views"`
	IsPublished  bool       `json:"isPublished"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// VideoFilter selects and orders videos for the list endpoint
type VideoFilter struct {
	Query   string
	OwnerID string
	SortBy  string
	SortAsc bool
	Page    int
	Limit   int
}

// VideoPage is the paginated video list payload
type VideoPage struct {
	Videos      []*Video `json:"videos"`
	TotalVideos int64    `json:"totalVideos"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int64    `json:"totalPages"`
}

// VideoDetail is a single video with its like count and comments
type VideoDetail struct {
	*Video
	TotalLikes int64      `json:"totalLikes"`
	Comments   []*Comment `json:"comments"`
}

// PublishVideoRequest carries the multipart publish form
type PublishVideoRequest struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *FileUpload
	Thumbnail   *FileUpload
}
