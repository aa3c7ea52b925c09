package repository

import (
	"context"

	"vidtube/internal/domain"
)

// UserRepository defines user and watch-history data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsernameOrEmail retrieves a user matching either identifier
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdatePassword replaces a user's password hash
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// UpsertWatchHistory records that a user watched a video; repeats bump
	// recency without creating duplicates
	UpsertWatchHistory(ctx context.Context, userID, videoID string) error

	// GetWatchHistory returns watched videos ordered by recency, owners populated
	GetWatchHistory(ctx context.Context, userID string) ([]*domain.Video, error)
}

// VideoRepository defines video data operations
type VideoRepository interface {
	// Create creates a new video
	Create(ctx context.Context, video *domain.Video) error

	// GetByID retrieves a video with its owner populated
	GetByID(ctx context.Context, id string) (*domain.Video, error)

	// List returns published videos matching the filter plus the total match count
	List(ctx context.Context, filter domain.VideoFilter) ([]*domain.Video, int64, error)

	// IncrementViews bumps the view counter
	IncrementViews(ctx context.Context, id string) error

	// SetPublished sets the publish flag
	SetPublished(ctx context.Context, id string, published bool) error

	// DeleteCascade removes a video and everything referencing it (likes on
	// its comments, its likes, comments, playlist memberships, watch history)
	// in one transaction
	DeleteCascade(ctx context.Context, id string) error
}

// CommentRepository defines comment data operations
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment
	GetByID(ctx context.Context, id string) (*domain.Comment, error)

	// ListByVideo returns a page of comments newest first, owners populated
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]*domain.Comment, error)

	// ListAllByVideo returns every comment on a video newest first, owners populated
	ListAllByVideo(ctx context.Context, videoID string) ([]*domain.Comment, error)

	// UpdateContent replaces a comment's text
	UpdateContent(ctx context.Context, id, content string) (*domain.Comment, error)

	// DeleteCascade removes a comment and its likes in one transaction
	DeleteCascade(ctx context.Context, id string) error
}

// LikeRepository defines like data operations. Toggles rely on the unique
// (user, target) indexes, not on a read-then-write check.
type LikeRepository interface {
	// ToggleVideoLike flips the like state, returning the new state
	ToggleVideoLike(ctx context.Context, userID, videoID string) (bool, error)

	// ToggleCommentLike flips the like state, returning the new state
	ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error)

	// CountByVideo returns the like count for a video
	CountByVideo(ctx context.Context, videoID string) (int64, error)

	// CountByComments returns like counts for many comments in one grouped query
	CountByComments(ctx context.Context, commentIDs []string) (map[string]int64, error)

	// LikedCommentIDs returns which of the given comments the user has liked
	LikedCommentIDs(ctx context.Context, userID string, commentIDs []string) (map[string]bool, error)

	// ListLikedVideos returns the videos a user has liked, owners populated
	ListLikedVideos(ctx context.Context, userID string) ([]*domain.Video, error)
}

// SubscriptionRepository defines subscription data operations
type SubscriptionRepository interface {
	// Toggle flips the subscription state, returning the new state
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)

	// CountSubscribers returns how many users subscribe to a channel
	CountSubscribers(ctx context.Context, channelID string) (int64, error)

	// CountSubscribedTo returns how many channels a user subscribes to
	CountSubscribedTo(ctx context.Context, subscriberID string) (int64, error)

	// IsSubscribed reports whether the subscriber follows the channel
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)

	// ListSubscribedChannels returns a user's subscriptions, channels populated
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*domain.Subscription, error)

	// ListSubscribers returns a channel's subscriptions, subscribers populated
	ListSubscribers(ctx context.Context, channelID string) ([]*domain.Subscription, error)
}

// PlaylistRepository defines playlist data operations
type PlaylistRepository interface {
	// Create creates a new playlist
	Create(ctx context.Context, playlist *domain.Playlist) error

	// GetByID retrieves a playlist; owner and member videos (with their
	// owners) are populated
	GetByID(ctx context.Context, id string) (*domain.Playlist, error)

	// Update replaces name and description
	Update(ctx context.Context, id, name, description string) (*domain.Playlist, error)

	// Delete removes a playlist and its memberships
	Delete(ctx context.Context, id string) error

	// AddVideo adds a video with set semantics
	AddVideo(ctx context.Context, playlistID, videoID string) error

	// RemoveVideo removes a video; removing a non-member is a no-op
	RemoveVideo(ctx context.Context, playlistID, videoID string) error

	// ListByUser returns a user's playlists with member videos populated
	ListByUser(ctx context.Context, userID string) ([]*domain.Playlist, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	User         UserRepository
	Video        VideoRepository
	Comment      CommentRepository
	Like         LikeRepository
	Subscription SubscriptionRepository
	Playlist     PlaylistRepository
}
