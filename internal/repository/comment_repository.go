package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"vidtube/internal/domain"
	"vidtube/pkg/database"
)

const commentWithOwnerColumns = `c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
	       u.id, u.username, u.avatar_url`

type PostgresCommentRepository struct {
	db *database.PostgresDB
}

func NewCommentRepository(db *database.PostgresDB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// Create creates a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, video_id, owner_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		comment.ID,
		comment.VideoID,
		comment.OwnerID,
		comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `
		SELECT ` + commentWithOwnerColumns + `
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.id = $1
	`

	comment, err := scanCommentWithOwner(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// ListByVideo returns a page of comments newest first, owners populated
func (r *PostgresCommentRepository) ListByVideo(ctx context.Context, videoID string, page, limit int) ([]*domain.Comment, error) {
	query := `
		SELECT ` + commentWithOwnerColumns + `
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, videoID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	return scanCommentsWithOwner(rows)
}

// ListAllByVideo returns every comment on a video newest first, owners populated
func (r *PostgresCommentRepository) ListAllByVideo(ctx context.Context, videoID string) ([]*domain.Comment, error) {
	query := `
		SELECT ` + commentWithOwnerColumns + `
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	return scanCommentsWithOwner(rows)
}

// UpdateContent replaces a comment's text
func (r *PostgresCommentRepository) UpdateContent(ctx context.Context, id, content string) (*domain.Comment, error) {
	query := `
		UPDATE comments SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, video_id, owner_id, content, created_at, updated_at
	`

	var comment domain.Comment
	err := r.db.Pool.QueryRow(ctx, query, id, content).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

// DeleteCascade removes a comment and its likes in one transaction
func (r *PostgresCommentRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE comment_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete comment likes: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}

func scanCommentWithOwner(row pgx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	var owner domain.OwnerInfo
	err := row.Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&owner.ID,
		&owner.Username,
		&owner.AvatarURL,
	)
	if err != nil {
		return nil, err
	}
	comment.Owner = &owner
	return &comment, nil
}

func scanCommentsWithOwner(rows pgx.Rows) ([]*domain.Comment, error) {
	comments := []*domain.Comment{}
	for rows.Next() {
		comment, err := scanCommentWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return comments, nil
}
