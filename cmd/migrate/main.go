package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("All tables created successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS watch_history CASCADE`,
		`DROP TABLE IF EXISTS playlist_videos CASCADE`,
		`DROP TABLE IF EXISTS playlists CASCADE`,
		`DROP TABLE IF EXISTS subscriptions CASCADE`,
		`DROP TABLE IF EXISTS likes CASCADE`,
		`DROP TABLE IF EXISTS comments CASCADE`,
		`DROP TABLE IF EXISTS videos CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			password_hash TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT '',
			avatar_key TEXT NOT NULL DEFAULT '',
			cover_image_url TEXT NOT NULL DEFAULT '',
			cover_image_key TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			video_url TEXT NOT NULL,
			video_key TEXT NOT NULL,
			thumbnail_url TEXT NOT NULL,
			thumbnail_key TEXT NOT NULL,
			duration DOUBLE PRECISION NOT NULL DEFAULT 0,
			views BIGINT NOT NULL DEFAULT 0,
			is_published BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS comments (
			id UUID PRIMARY KEY,
			video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS likes (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			video_id UUID REFERENCES videos(id) ON DELETE CASCADE,
			comment_id UUID REFERENCES comments(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (
				(video_id IS NOT NULL AND comment_id IS NULL) OR
				(video_id IS NULL AND comment_id IS NOT NULL)
			)
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS likes_user_video_uq
			ON likes(user_id, video_id) WHERE video_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS likes_user_comment_uq
			ON likes(user_id, comment_id) WHERE comment_id IS NOT NULL`,

		`CREATE TABLE IF NOT EXISTS subscriptions (
			id UUID PRIMARY KEY,
			subscriber_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			channel_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (subscriber_id, channel_id)
		)`,

		`CREATE TABLE IF NOT EXISTS playlists (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS playlist_videos (
			playlist_id UUID NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (playlist_id, video_id)
		)`,

		`CREATE TABLE IF NOT EXISTS watch_history (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			watched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, video_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_videos_owner_id ON videos(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_video_id ON comments(video_id)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_video_id ON likes(video_id)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_comment_id ON likes(comment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_channel_id ON subscriptions(channel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_playlists_owner_id ON playlists(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_history_user_id ON watch_history(user_id, watched_at DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", summarize(query))
	}

	return nil
}

func summarize(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
