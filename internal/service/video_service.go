package service

import (
	"context"

	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// VideoService handles the video lifecycle
type VideoService struct {
	videos   repository.VideoRepository
	users    repository.UserRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
	storage  MediaStorage
	log      *logger.Logger
}

// NewVideoService creates a new video service
func NewVideoService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	storage MediaStorage,
	log *logger.Logger,
) *VideoService {
	return &VideoService{
		videos:   videos,
		users:    users,
		comments: comments,
		likes:    likes,
		storage:  storage,
		log:      log,
	}
}

// List returns published videos matching the filter, paginated
func (s *VideoService) List(ctx context.Context, filter domain.VideoFilter) (*domain.VideoPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	videos, total, err := s.videos.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch videos", err)
	}

	totalPages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		totalPages++
	}

	return &domain.VideoPage{
		Videos:      videos,
		TotalVideos: total,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
	}, nil
}

// Publish uploads both media assets and creates a published video. Either
// upload failing fails the request.
func (s *VideoService) Publish(ctx context.Context, ownerID string, req *domain.PublishVideoRequest) (*domain.Video, error) {
	if req.Title == "" || req.Description == "" || req.VideoFile == nil || req.Thumbnail == nil {
		return nil, errors.NewBadRequestError("Provide all fields")
	}

	videoURL, videoKey, err := s.storage.Upload(ctx, folderVideos, req.VideoFile.Filename,
		req.VideoFile.Reader, req.VideoFile.Size, req.VideoFile.ContentType)
	if err != nil {
		return nil, errors.NewInternalError("Failed to upload video file", err)
	}

	thumbURL, thumbKey, err := s.storage.Upload(ctx, folderThumbnails, req.Thumbnail.Filename,
		req.Thumbnail.Reader, req.Thumbnail.Size, req.Thumbnail.ContentType)
	if err != nil {
		return nil, errors.NewInternalError("Failed to upload thumbnail", err)
	}

	video := &domain.Video{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoURL,
		VideoKey:     videoKey,
		ThumbnailURL: thumbURL,
		ThumbnailKey: thumbKey,
		Duration:     req.Duration,
		IsPublished:  true,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, errors.NewInternalError("Failed to create video", err)
	}

	s.log.WithFields(map[string]interface{}{
		"video_id": video.ID,
		"owner_id": ownerID,
	}).Info("Video published")

	return video, nil
}

// GetByID returns a video with like count and comments. Every fetch
// increments the view counter and records the viewer's watch history;
// history has set semantics so repeats only bump recency.
func (s *VideoService) GetByID(ctx context.Context, videoID, viewerID string) (*domain.VideoDetail, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch video", err)
	}
	if video == nil {
		return nil, errors.NewNotFoundError("Video not found")
	}

	totalLikes, err := s.likes.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to count likes", err)
	}

	comments, err := s.comments.ListAllByVideo(ctx, videoID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch comments", err)
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		return nil, errors.NewInternalError("Failed to record view", err)
	}
	if err := s.users.UpsertWatchHistory(ctx, viewerID, videoID); err != nil {
		return nil, errors.NewInternalError("Failed to record watch history", err)
	}

	return &domain.VideoDetail{
		Video:      video,
		TotalLikes: totalLikes,
		Comments:   comments,
	}, nil
}

// Delete removes an owned video, cascading through likes, comments,
// playlist memberships and history, then releases the media objects
func (s *VideoService) Delete(ctx context.Context, videoID, actorID string) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return errors.NewInternalError("Failed to fetch video", err)
	}
	if video == nil {
		return errors.NewNotFoundError("Video not found")
	}
	if err := requireOwner(actorID, video.OwnerID, "You are not allowed to delete this video"); err != nil {
		return err
	}

	if err := s.videos.DeleteCascade(ctx, videoID); err != nil {
		return errors.NewInternalError("Failed to delete video", err)
	}

	if err := s.storage.Delete(ctx, video.VideoKey); err != nil {
		return errors.NewInternalError("Failed to release video asset", err)
	}
	if err := s.storage.Delete(ctx, video.ThumbnailKey); err != nil {
		return errors.NewInternalError("Failed to release thumbnail asset", err)
	}

	s.log.WithFields(map[string]interface{}{
		"video_id": videoID,
		"owner_id": actorID,
	}).Info("Video deleted")

	return nil
}

// TogglePublish flips the publish flag and returns the new state
func (s *VideoService) TogglePublish(ctx context.Context, videoID, actorID string) (bool, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return false, errors.NewInternalError("Failed to fetch video", err)
	}
	if video == nil {
		return false, errors.NewNotFoundError("Video not found")
	}
	if err := requireOwner(actorID, video.OwnerID, "You can't toggle publish status as you are not the owner"); err != nil {
		return false, err
	}

	newState := !video.IsPublished
	if err := s.videos.SetPublished(ctx, videoID, newState); err != nil {
		return false, errors.NewInternalError("Failed to toggle publish status", err)
	}
	return newState, nil
}
