package service

import (
	"context"

	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// CommentService handles comments on videos
type CommentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
	likes    repository.LikeRepository
	log      *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	comments repository.CommentRepository,
	videos repository.VideoRepository,
	likes repository.LikeRepository,
	log *logger.Logger,
) *CommentService {
	return &CommentService{comments: comments, videos: videos, likes: likes, log: log}
}

// ListByVideo returns a page of comments decorated with like counts and the
// viewer's liked flag. Aggregates come from two grouped queries keyed by
// comment ID rather than one pair of queries per comment.
func (s *CommentService) ListByVideo(ctx context.Context, videoID, viewerID string, page, limit int) ([]*domain.CommentWithLikes, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	comments, err := s.comments.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch comments", err)
	}

	ids := make([]string, len(comments))
	for i, comment := range comments {
		ids[i] = comment.ID
	}

	counts, err := s.likes.CountByComments(ctx, ids)
	if err != nil {
		return nil, errors.NewInternalError("Failed to count comment likes", err)
	}
	liked, err := s.likes.LikedCommentIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, errors.NewInternalError("Failed to check liked comments", err)
	}

	result := make([]*domain.CommentWithLikes, len(comments))
	for i, comment := range comments {
		result[i] = &domain.CommentWithLikes{
			Comment:    comment,
			TotalLikes: counts[comment.ID],
			IsLiked:    liked[comment.ID],
		}
	}
	return result, nil
}

// Add creates a comment on a video
func (s *CommentService) Add(ctx context.Context, videoID, ownerID, content string) (*domain.Comment, error) {
	if content == "" {
		return nil, errors.NewBadRequestError("Content is required")
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch video", err)
	}
	if video == nil {
		return nil, errors.NewNotFoundError("Video not found")
	}

	comment := &domain.Comment{
		ID:      uuid.NewString(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, errors.NewInternalError("Failed to create comment", err)
	}

	s.log.WithFields(map[string]interface{}{
		"comment_id": comment.ID,
		"video_id":   videoID,
	}).Debug("Comment created")

	return comment, nil
}

// Update edits a comment's text, owner only
func (s *CommentService) Update(ctx context.Context, commentID, actorID, content string) (*domain.Comment, error) {
	if content == "" {
		return nil, errors.NewBadRequestError("Content is required")
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch comment", err)
	}
	if comment == nil {
		return nil, errors.NewNotFoundError("Comment not found")
	}
	if err := requireOwner(actorID, comment.OwnerID, "Only comment owner can edit their comment"); err != nil {
		return nil, err
	}

	updated, err := s.comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, errors.NewInternalError("Failed to edit comment", err)
	}
	if updated == nil {
		return nil, errors.NewInternalError("Failed to edit comment", nil)
	}
	return updated, nil
}

// Delete removes a comment and its likes, owner only
func (s *CommentService) Delete(ctx context.Context, commentID, actorID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return errors.NewInternalError("Failed to fetch comment", err)
	}
	if comment == nil {
		return errors.NewNotFoundError("Comment not found")
	}
	if err := requireOwner(actorID, comment.OwnerID, "Only comment owner can delete this comment"); err != nil {
		return err
	}

	if err := s.comments.DeleteCascade(ctx, commentID); err != nil {
		return errors.NewInternalError("Failed to delete comment", err)
	}
	return nil
}
