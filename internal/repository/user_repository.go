package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"vidtube/internal/domain"
	"vidtube/pkg/database"
)

const userColumns = `id, username, email, full_name, password_hash, avatar_url, avatar_key,
	       cover_image_url, cover_image_key, created_at, updated_at`

type PostgresUserRepository struct {
	db *database.PostgresDB
}

func NewUserRepository(db *database.PostgresDB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, full_name, password_hash, avatar_url, avatar_key,
		                   cover_image_url, cover_image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.AvatarURL,
		user.AvatarKey,
		user.CoverImageURL,
		user.CoverImageKey,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByUsernameOrEmail retrieves a user matching either identifier
func (r *PostgresUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, username, email))
}

// GetByUsername retrieves a user by username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, username))
}

// UpdatePassword replaces a user's password hash
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

// UpsertWatchHistory records a watch event with set semantics: a repeat
// watch bumps watched_at instead of inserting a second row
func (r *PostgresUserRepository) UpsertWatchHistory(ctx context.Context, userID, videoID string) error {
	query := `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()
	`
	if _, err := r.db.Pool.Exec(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("failed to upsert watch history: %w", err)
	}
	return nil
}

// GetWatchHistory returns watched videos ordered by recency, owners populated
func (r *PostgresUserRepository) GetWatchHistory(ctx context.Context, userID string) ([]*domain.Video, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	defer rows.Close()

	return scanVideosWithOwner(rows)
}

func (r *PostgresUserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.AvatarKey,
		&user.CoverImageURL,
		&user.CoverImageKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
