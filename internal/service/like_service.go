package service

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// LikeService handles like toggles on videos and comments
type LikeService struct {
	likes    repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	log      *logger.Logger
}

// NewLikeService creates a new like service
func NewLikeService(
	likes repository.LikeRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	log *logger.Logger,
) *LikeService {
	return &LikeService{likes: likes, videos: videos, comments: comments, log: log}
}

// ToggleVideoLike flips the like state on a video and returns the new state
func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID string) (bool, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return false, errors.NewInternalError("Failed to fetch video", err)
	}
	if video == nil {
		return false, errors.NewNotFoundError("Video not found")
	}

	liked, err := s.likes.ToggleVideoLike(ctx, userID, videoID)
	if err != nil {
		return false, errors.NewInternalError("Failed to toggle like", err)
	}
	return liked, nil
}

// ToggleCommentLike flips the like state on a comment and returns the new state
func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return false, errors.NewInternalError("Failed to fetch comment", err)
	}
	if comment == nil {
		return false, errors.NewNotFoundError("Comment not found")
	}

	liked, err := s.likes.ToggleCommentLike(ctx, userID, commentID)
	if err != nil {
		return false, errors.NewInternalError("Failed to toggle like", err)
	}
	return liked, nil
}

// GetLikedVideos returns the videos the user has liked
func (s *LikeService) GetLikedVideos(ctx context.Context, userID string) ([]*domain.Video, error) {
	videos, err := s.likes.ListLikedVideos(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch liked videos", err)
	}
	return videos, nil
}
