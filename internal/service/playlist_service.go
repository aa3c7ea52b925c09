package service

import (
	"context"

	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// PlaylistService handles playlist management
type PlaylistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	log       *logger.Logger
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(
	playlists repository.PlaylistRepository,
	videos repository.VideoRepository,
	log *logger.Logger,
) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, log: log}
}

// Create creates a playlist owned by the actor
func (s *PlaylistService) Create(ctx context.Context, ownerID string, req *domain.PlaylistRequest) (*domain.Playlist, error) {
	if req.Name == "" || req.Description == "" {
		return nil, errors.NewBadRequestError("All fields are required")
	}

	playlist := &domain.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, errors.NewInternalError("Failed to create playlist", err)
	}

	s.log.WithFields(map[string]interface{}{
		"playlist_id": playlist.ID,
		"owner_id":    ownerID,
	}).Debug("Playlist created")

	return playlist, nil
}

// Update replaces name and description, owner only
func (s *PlaylistService) Update(ctx context.Context, playlistID, actorID string, req *domain.PlaylistRequest) (*domain.Playlist, error) {
	if req.Name == "" || req.Description == "" {
		return nil, errors.NewBadRequestError("Provide all fields")
	}

	playlist, err := s.getOwned(ctx, playlistID, actorID, "Only owner can update the playlist")
	if err != nil {
		return nil, err
	}

	updated, err := s.playlists.Update(ctx, playlist.ID, req.Name, req.Description)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update playlist", err)
	}
	if updated == nil {
		return nil, errors.NewNotFoundError("Playlist not found")
	}
	return updated, nil
}

// Delete removes a playlist, owner only
func (s *PlaylistService) Delete(ctx context.Context, playlistID, actorID string) error {
	if _, err := s.getOwned(ctx, playlistID, actorID, "Only owner can delete the playlist"); err != nil {
		return err
	}

	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return errors.NewInternalError("Failed to delete playlist", err)
	}
	return nil
}

// AddVideo adds a video to an owned playlist with set semantics
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actorID string) (*domain.Playlist, error) {
	if _, err := s.getOwned(ctx, playlistID, actorID, "Only owner can add video to their playlist"); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch video", err)
	}
	if video == nil {
		return nil, errors.NewNotFoundError("Video not found")
	}

	if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, errors.NewInternalError("Failed to add video to playlist", err)
	}

	return s.GetByID(ctx, playlistID)
}

// RemoveVideo removes a video from an owned playlist; removing a non-member
// is a no-op
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID string) (*domain.Playlist, error) {
	if _, err := s.getOwned(ctx, playlistID, actorID, "Only owner can remove video from their playlist"); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch video", err)
	}
	if video == nil {
		return nil, errors.NewNotFoundError("Video not found")
	}

	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, errors.NewInternalError("Failed to remove video from playlist", err)
	}

	return s.GetByID(ctx, playlistID)
}

// ListByUser returns a user's playlists projected to summaries: first
// video's thumbnail plus a member count
func (s *PlaylistService) ListByUser(ctx context.Context, userID string) ([]*domain.PlaylistSummary, error) {
	playlists, err := s.playlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch playlists", err)
	}
	if len(playlists) == 0 {
		return nil, errors.NewNotFoundError("No playlists found")
	}

	summaries := make([]*domain.PlaylistSummary, len(playlists))
	for i, playlist := range playlists {
		summary := &domain.PlaylistSummary{
			ID:          playlist.ID,
			Name:        playlist.Name,
			Description: playlist.Description,
			TotalVideos: len(playlist.Videos),
			UpdatedAt:   playlist.UpdatedAt,
		}
		if len(playlist.Videos) > 0 {
			summary.Thumbnail = playlist.Videos[0].ThumbnailURL
		}
		summaries[i] = summary
	}
	return summaries, nil
}

// GetByID returns a playlist with owner and member videos populated
func (s *PlaylistService) GetByID(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch playlist", err)
	}
	if playlist == nil {
		return nil, errors.NewNotFoundError("Playlist not found")
	}
	return playlist, nil
}

// getOwned fetches a playlist and enforces ownership
func (s *PlaylistService) getOwned(ctx context.Context, playlistID, actorID, forbiddenMsg string) (*domain.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch playlist", err)
	}
	if playlist == nil {
		return nil, errors.NewNotFoundError("Playlist not found")
	}
	if err := requireOwner(actorID, playlist.OwnerID, forbiddenMsg); err != nil {
		return nil, err
	}
	return playlist, nil
}
