package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"vidtube/internal/domain"
	"vidtube/pkg/database"
)

type PostgresPlaylistRepository struct {
	db *database.PostgresDB
}

func NewPlaylistRepository(db *database.PostgresDB) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{db: db}
}

// Create creates a new playlist
func (r *PostgresPlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	query := `
		INSERT INTO playlists (id, owner_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		playlist.ID,
		playlist.OwnerID,
		playlist.Name,
		playlist.Description,
	).Scan(&playlist.CreatedAt, &playlist.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

// GetByID retrieves a playlist with its owner and member videos populated
func (r *PostgresPlaylistRepository) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	query := `
		SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		       u.id, u.username, u.avatar_url
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`

	var playlist domain.Playlist
	var owner domain.OwnerInfo
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&playlist.ID,
		&playlist.OwnerID,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
		&owner.ID,
		&owner.Username,
		&owner.AvatarURL,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	playlist.Owner = &owner

	videos, err := r.memberVideos(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos[id]
	if playlist.Videos == nil {
		playlist.Videos = []*domain.Video{}
	}

	return &playlist, nil
}

// Update replaces name and description
func (r *PostgresPlaylistRepository) Update(ctx context.Context, id, name, description string) (*domain.Playlist, error) {
	query := `
		UPDATE playlists SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, owner_id, name, description, created_at, updated_at
	`

	var playlist domain.Playlist
	err := r.db.Pool.QueryRow(ctx, query, id, name, description).Scan(
		&playlist.ID,
		&playlist.OwnerID,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return &playlist, nil
}

// Delete removes a playlist and its memberships
func (r *PostgresPlaylistRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM playlist_videos WHERE playlist_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete playlist memberships: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}

// AddVideo adds a video with set semantics
func (r *PostgresPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`
	if _, err := r.db.Pool.Exec(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to add video to playlist: %w", err)
	}
	return nil
}

// RemoveVideo removes a video; removing a non-member is a no-op
func (r *PostgresPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`
	if _, err := r.db.Pool.Exec(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}
	return nil
}

// ListByUser returns a user's playlists with member videos populated. Two
// queries total: one for the playlists, one grouped fetch of all members.
func (r *PostgresPlaylistRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	playlists := []*domain.Playlist{}
	ids := []string{}
	for rows.Next() {
		var playlist domain.Playlist
		if err := rows.Scan(
			&playlist.ID,
			&playlist.OwnerID,
			&playlist.Name,
			&playlist.Description,
			&playlist.CreatedAt,
			&playlist.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, &playlist)
		ids = append(ids, playlist.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlists: %w", err)
	}

	members, err := r.memberVideos(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, playlist := range playlists {
		playlist.Videos = members[playlist.ID]
		if playlist.Videos == nil {
			playlist.Videos = []*domain.Video{}
		}
	}

	return playlists, nil
}

// memberVideos fetches member videos for many playlists in one grouped
// query, keyed by playlist ID and ordered by when they were added
func (r *PostgresPlaylistRepository) memberVideos(ctx context.Context, playlistIDs []string) (map[string][]*domain.Video, error) {
	members := make(map[string][]*domain.Video, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return members, nil
	}

	query := `
		SELECT pv.playlist_id, ` + videoWithOwnerColumns + `
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE pv.playlist_id = ANY($1)
		ORDER BY pv.added_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, playlistIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist videos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var playlistID string
		var video domain.Video
		var owner domain.OwnerInfo
		if err := rows.Scan(
			&playlistID,
			&video.ID,
			&video.OwnerID,
			&video.Title,
			&video.Description,
			&video.VideoURL,
			&video.VideoKey,
			&video.ThumbnailURL,
			&video.ThumbnailKey,
			&video.Duration,
			&video.Views,
			&video.IsPublished,
			&video.CreatedAt,
			&video.UpdatedAt,
			&owner.ID,
			&owner.Username,
			&owner.AvatarURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan playlist video: %w", err)
		}
		video.Owner = &owner
		members[playlistID] = append(members[playlistID], &video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist videos: %w", err)
	}
	return members, nil
}
