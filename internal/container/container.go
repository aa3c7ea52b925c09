package container

import (
	"context"

	"vidtube/internal/config"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/internal/service/auth"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"
	"vidtube/pkg/redis"
	"vidtube/pkg/storage"
)

// Services aggregates all application services
type Services struct {
	User         *service.UserService
	Video        *service.VideoService
	Comment      *service.CommentService
	Like         *service.LikeService
	Subscription *service.SubscriptionService
	Playlist     *service.PlaylistService
}

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *database.PostgresDB
	RedisClient  *redis.Client
	Storage      *storage.Storage
	TokenManager *auth.TokenManager
	Repositories *repository.Repositories
	Services     *Services
}

// New creates a new dependency injection container. Every backing dependency
// is required; a failed connection fails startup.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	redisClient, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	mediaStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = redisClient.Close()
		db.Close()
		return nil, err
	}

	tokens := auth.NewTokenManager(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	repos := &repository.Repositories{
		User:         repository.NewUserRepository(db),
		Video:        repository.NewVideoRepository(db),
		Comment:      repository.NewCommentRepository(db),
		Like:         repository.NewLikeRepository(db),
		Subscription: repository.NewSubscriptionRepository(db),
		Playlist:     repository.NewPlaylistRepository(db),
	}

	services := &Services{
		User:         service.NewUserService(repos.User, repos.Subscription, redisClient, mediaStorage, tokens, log),
		Video:        service.NewVideoService(repos.Video, repos.User, repos.Comment, repos.Like, mediaStorage, log),
		Comment:      service.NewCommentService(repos.Comment, repos.Video, repos.Like, log),
		Like:         service.NewLikeService(repos.Like, repos.Video, repos.Comment, log),
		Subscription: service.NewSubscriptionService(repos.Subscription, repos.User, log),
		Playlist:     service.NewPlaylistService(repos.Playlist, repos.Video, log),
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		DB:           db,
		RedisClient:  redisClient,
		Storage:      mediaStorage,
		TokenManager: tokens,
		Repositories: repos,
		Services:     services,
	}, nil
}
