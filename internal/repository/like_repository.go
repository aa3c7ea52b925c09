package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/pkg/database"
)

type PostgresLikeRepository struct {
	db *database.PostgresDB
}

func NewLikeRepository(db *database.PostgresDB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleVideoLike flips the like state for (user, video). The insert-first
// approach lets the unique index arbitrate concurrent toggles: whichever
// call loses the insert race deletes instead.
func (r *PostgresLikeRepository) ToggleVideoLike(ctx context.Context, userID, videoID string) (bool, error) {
	insert := `
		INSERT INTO likes (id, user_id, video_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, video_id) WHERE video_id IS NOT NULL DO NOTHING
	`
	tag, err := r.db.Pool.Exec(ctx, insert, uuid.NewString(), userID, videoID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle video like: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	del := `DELETE FROM likes WHERE user_id = $1 AND video_id = $2`
	if _, err := r.db.Pool.Exec(ctx, del, userID, videoID); err != nil {
		return false, fmt.Errorf("failed to remove video like: %w", err)
	}
	return false, nil
}

// ToggleCommentLike flips the like state for (user, comment)
func (r *PostgresLikeRepository) ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	insert := `
		INSERT INTO likes (id, user_id, comment_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, comment_id) WHERE comment_id IS NOT NULL DO NOTHING
	`
	tag, err := r.db.Pool.Exec(ctx, insert, uuid.NewString(), userID, commentID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle comment like: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	del := `DELETE FROM likes WHERE user_id = $1 AND comment_id = $2`
	if _, err := r.db.Pool.Exec(ctx, del, userID, commentID); err != nil {
		return false, fmt.Errorf("failed to remove comment like: %w", err)
	}
	return false, nil
}

// CountByVideo returns the like count for a video
func (r *PostgresLikeRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM likes WHERE video_id = $1`
	if err := r.db.Pool.QueryRow(ctx, query, videoID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count video likes: %w", err)
	}
	return count, nil
}

// CountByComments returns like counts for many comments in one grouped query
func (r *PostgresLikeRepository) CountByComments(ctx context.Context, commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT comment_id, count(*)
		FROM likes
		WHERE comment_id = ANY($1)
		GROUP BY comment_id
	`
	rows, err := r.db.Pool.Query(ctx, query, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count comment likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan like count: %w", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read like counts: %w", err)
	}
	return counts, nil
}

// LikedCommentIDs returns which of the given comments the user has liked
func (r *PostgresLikeRepository) LikedCommentIDs(ctx context.Context, userID string, commentIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(commentIDs))
	if len(commentIDs) == 0 {
		return liked, nil
	}

	query := `SELECT comment_id FROM likes WHERE user_id = $1 AND comment_id = ANY($2)`

	rows, err := r.db.Pool.Query(ctx, query, userID, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan liked comment: %w", err)
		}
		liked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read liked comments: %w", err)
	}
	return liked, nil
}

// ListLikedVideos returns the videos a user has liked, owners populated.
// Likes whose video has since vanished drop out via the join.
func (r *PostgresLikeRepository) ListLikedVideos(ctx context.Context, userID string) ([]*domain.Video, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE l.user_id = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	defer rows.Close()

	return scanVideosWithOwner(rows)
}
