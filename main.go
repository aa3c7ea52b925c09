package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"vidtube/internal/config"
	"vidtube/internal/container"
	"vidtube/internal/handler"
	"vidtube/internal/middleware"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"
	"vidtube/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed")
		}
	}

	if r.db != nil {
		r.db.Close()
		r.log.Info("Database connection pool closed")
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting vidtube server")

	ctx := context.Background()

	c, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize dependencies")
	}

	router := setupRouter(c)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	resources := &Resources{
		db:          c.DB,
		redisClient: c.RedisClient,
		server:      server,
		log:         log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.Config
	log := c.Logger

	userHandler := handler.NewUserHandler(c.Services.User, log, cfg.SecureCookies, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	videoHandler := handler.NewVideoHandler(c.Services.Video, log)
	commentHandler := handler.NewCommentHandler(c.Services.Comment, log)
	likeHandler := handler.NewLikeHandler(c.Services.Like, log)
	subscriptionHandler := handler.NewSubscriptionHandler(c.Services.Subscription, log)
	playlistHandler := handler.NewPlaylistHandler(c.Services.Playlist, log)
	healthHandler := handler.NewHealthHandler(c.DB, c.RedisClient, log)

	requireAuth := middleware.Auth(c.TokenManager, log)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.AllowedOrigins

	r := chi.NewRouter()

	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.RequestID())
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", healthHandler.Health)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/refresh-token", userHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/logout", userHandler.Logout)
			r.Post("/change-password", userHandler.ChangePassword)
			r.Post("/current-user", userHandler.CurrentUser)
			r.Get("/c/{username}", userHandler.ChannelProfile)
			r.Get("/history", userHandler.WatchHistory)
		})
	})

	r.Route("/videos", func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/", videoHandler.List)
		r.Post("/publish", videoHandler.Publish)
		r.Get("/{videoId}", videoHandler.GetByID)
		r.Post("/delete/{videoId}", videoHandler.Delete)
		r.Post("/toggle/{videoId}", videoHandler.TogglePublish)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/video/{videoId}", commentHandler.ListByVideo)
		r.Post("/{videoId}/add", commentHandler.Add)
		r.Post("/{commentId}/update", commentHandler.Update)
		r.Post("/{commentId}/delete", commentHandler.Delete)
	})

	r.Route("/likes", func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/toggle-video/{videoId}", likeHandler.ToggleVideoLike)
		r.Post("/toggle-comment/{commentId}", likeHandler.ToggleCommentLike)
		r.Get("/videos", likeHandler.LikedVideos)
	})

	r.Route("/subscriptions", func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/toggle/{channelId}", subscriptionHandler.Toggle)
		r.Get("/subscribed-channels/{subscriberId}", subscriptionHandler.SubscribedChannels)
		r.Get("/get-subscribers/{channelId}", subscriptionHandler.Subscribers)
	})

	r.Route("/playlists", func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/create", playlistHandler.Create)
		r.Post("/update/{playlistId}", playlistHandler.Update)
		r.Post("/delete/{playlistId}", playlistHandler.Delete)
		r.Post("/add/{playlistId}/{videoId}", playlistHandler.AddVideo)
		r.Post("/delete/{playlistId}/{videoId}", playlistHandler.RemoveVideo)
		r.Get("/get/{userId}", playlistHandler.ListByUser)
		r.Get("/get/p/{playlistId}", playlistHandler.GetByID)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"statusCode":404,"message":"Endpoint not found","success":false}`))
	})

	log.Info("Router configured successfully")
	return r
}
