package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"vidtube/internal/domain"
	"vidtube/pkg/database"
)

const videoWithOwnerColumns = `v.id, v.owner_id, v.title, v.description, v.video_url, v.video_key,
	       v.thumbnail_url, v.thumbnail_key, v.duration, v.views, v.is_published,
	       v.created_at, v.updated_at, u.id, u.username, u.avatar_url`

// sortColumns whitelists sortable fields so client input never reaches SQL
var sortColumns = map[string]string{
	"created_at": "v.created_at",
	"views":      "v.views",
	"duration":   "v.duration",
	"title":      "v.title",
}

type PostgresVideoRepository struct {
	db *database.PostgresDB
}

func NewVideoRepository(db *database.PostgresDB) *PostgresVideoRepository {
	return &PostgresVideoRepository{db: db}
}

// Create creates a new video
func (r *PostgresVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, title, description, video_url, video_key,
		                    thumbnail_url, thumbnail_key, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING views, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.VideoKey,
		video.ThumbnailURL,
		video.ThumbnailKey,
		video.Duration,
		video.IsPublished,
	).Scan(&video.Views, &video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// GetByID retrieves a video with its owner populated
func (r *PostgresVideoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1
	`

	video, err := scanVideoWithOwner(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

// List returns published videos matching the filter plus the total match count
func (r *PostgresVideoRepository) List(ctx context.Context, filter domain.VideoFilter) ([]*domain.Video, int64, error) {
	where := []string{"v.is_published = TRUE"}
	args := []interface{}{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(v.title ILIKE $%d OR v.description ILIKE $%d)", n, n))
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		where = append(where, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT count(*) FROM videos v WHERE ` + whereClause
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	orderBy := "v.created_at DESC"
	if col, ok := sortColumns[filter.SortBy]; ok {
		direction := "DESC"
		if filter.SortAsc {
			direction = "ASC"
		}
		orderBy = col + " " + direction
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT `+videoWithOwnerColumns+`
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos, err := scanVideosWithOwner(rows)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// IncrementViews bumps the view counter
func (r *PostgresVideoRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE videos SET views = views + 1 WHERE id = $1`
	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// SetPublished sets the publish flag
func (r *PostgresVideoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	query := `UPDATE videos SET is_published = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, query, id, published)
	if err != nil {
		return fmt.Errorf("failed to set publish status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("video %s not found", id)
	}
	return nil
}

// DeleteCascade removes a video and every row referencing it inside one
// transaction. Order matters: likes on the video's comments go first, then
// the video's own likes, comments, playlist memberships and history rows.
func (r *PostgresVideoRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM likes WHERE comment_id IN (SELECT id FROM comments WHERE video_id = $1)`,
		`DELETE FROM likes WHERE video_id = $1`,
		`DELETE FROM comments WHERE video_id = $1`,
		`DELETE FROM playlist_videos WHERE video_id = $1`,
		`DELETE FROM watch_history WHERE video_id = $1`,
		`DELETE FROM videos WHERE id = $1`,
	}

	for _, step := range steps {
		if _, err := tx.Exec(ctx, step, id); err != nil {
			return fmt.Errorf("failed to cascade delete video: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}

func scanVideoWithOwner(row pgx.Row) (*domain.Video, error) {
	var video domain.Video
	var owner domain.OwnerInfo
	err := row.Scan(
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
	)
	if err != nil {
		return nil, err
	}
	video.Owner = &owner
	return &video, nil
}

func scanVideosWithOwner(rows pgx.Rows) ([]*domain.Video, error) {
	videos := []*domain.Video{}
	for rows.Next() {
		video, err := scanVideoWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}
	return videos, nil
}
