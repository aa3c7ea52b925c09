package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/internal/service/auth"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// UserService handles registration, sessions and channel profiles
type UserService struct {
	users         repository.UserRepository
	subscriptions repository.SubscriptionRepository
	sessions      SessionStore
	storage       MediaStorage
	tokens        *auth.TokenManager
	log           *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users repository.UserRepository,
	subscriptions repository.SubscriptionRepository,
	sessions SessionStore,
	storage MediaStorage,
	tokens *auth.TokenManager,
	log *logger.Logger,
) *UserService {
	return &UserService{
		users:         users,
		subscriptions: subscriptions,
		sessions:      sessions,
		storage:       storage,
		tokens:        tokens,
		log:           log,
	}
}

// Register creates a new account. The avatar is mandatory; a failed media
// upload fails the whole request instead of registering a user without one.
func (s *UserService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	if req.FullName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, errors.NewBadRequestError("All fields are required")
	}
	if req.Avatar == nil {
		return nil, errors.NewBadRequestError("Please upload avatar")
	}

	username := strings.ToLower(req.Username)

	existing, err := s.users.GetByUsernameOrEmail(ctx, username, req.Email)
	if err != nil {
		return nil, errors.NewInternalError("Failed to check existing users", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("User already exists")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewInternalError("Failed to hash password", err)
	}

	avatarURL, avatarKey, err := s.storage.Upload(ctx, folderAvatars, req.Avatar.Filename,
		req.Avatar.Reader, req.Avatar.Size, req.Avatar.ContentType)
	if err != nil {
		return nil, errors.NewInternalError("Failed to upload avatar", err)
	}

	var coverURL, coverKey string
	if req.CoverImage != nil {
		coverURL, coverKey, err = s.storage.Upload(ctx, folderCovers, req.CoverImage.Filename,
			req.CoverImage.Reader, req.CoverImage.Size, req.CoverImage.ContentType)
		if err != nil {
			return nil, errors.NewInternalError("Failed to upload cover image", err)
		}
	}

	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         req.Email,
		FullName:      req.FullName,
		PasswordHash:  passwordHash,
		AvatarURL:     avatarURL,
		AvatarKey:     avatarKey,
		CoverImageURL: coverURL,
		CoverImageKey: coverKey,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, errors.NewInternalError("Failed to register user", err)
	}

	s.log.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *UserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResult, error) {
	if req.Username == "" && req.Email == "" {
		return nil, errors.NewBadRequestError("Please provide username or email")
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, strings.ToLower(req.Username), req.Email)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User does not exist")
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, errors.NewUnauthorizedError("Wrong password")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("User logged in")

	return &domain.LoginResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout revokes the stored refresh token
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.sessions.DeleteRefreshToken(ctx, userID); err != nil {
		return errors.NewInternalError("Failed to revoke session", err)
	}
	s.log.WithField("user_id", userID).Info("User logged out")
	return nil
}

// Refresh exchanges a valid refresh token matching the stored one for a new
// pair. Any mismatch, unknown user or expired token yields Unauthorized.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, errors.NewUnauthorizedError("Unauthorized request")
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewUnauthorizedError("Invalid refresh token")
	}

	stored, err := s.sessions.GetRefreshToken(ctx, user.ID)
	if err != nil || stored != auth.HashToken(refreshToken) {
		return nil, errors.NewUnauthorizedError("Refresh token is expired or used")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Debug("Access token refreshed")
	return pair, nil
}

// ChangePassword replaces the password after verifying the old one
func (s *UserService) ChangePassword(ctx context.Context, userID string, req *domain.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return errors.NewBadRequestError("All fields are required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError("User not found")
	}

	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		return errors.NewBadRequestError("Password is invalid")
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return errors.NewInternalError("Failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return errors.NewInternalError("Failed to change password", err)
	}

	s.log.WithField("user_id", userID).Info("Password changed")
	return nil
}

// GetCurrentUser returns the authenticated user
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}
	return user, nil
}

// GetChannelProfile returns a user profile viewed as a channel, with
// subscriber aggregates computed relative to the viewer
func (s *UserService) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.NewBadRequestError("Username is missing")
	}

	channel, err := s.users.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up channel", err)
	}
	if channel == nil {
		return nil, errors.NewNotFoundError("Channel does not exist")
	}

	subscribers, err := s.subscriptions.CountSubscribers(ctx, channel.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to count subscribers", err)
	}
	subscribedTo, err := s.subscriptions.CountSubscribedTo(ctx, channel.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to count subscribed channels", err)
	}

	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = s.subscriptions.IsSubscribed(ctx, viewerID, channel.ID)
		if err != nil {
			return nil, errors.NewInternalError("Failed to check subscription", err)
		}
	}

	return &domain.ChannelProfile{
		User:              *channel,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// GetWatchHistory returns watched videos ordered by recency
func (s *UserService) GetWatchHistory(ctx context.Context, userID string) ([]*domain.Video, error) {
	history, err := s.users.GetWatchHistory(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch watch history", err)
	}
	return history, nil
}

// issueTokens generates a pair and stores the refresh digest, rotating any
// previous session
func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	pair, err := s.tokens.GeneratePair(user)
	if err != nil {
		return nil, errors.NewInternalError("Failed to issue tokens", err)
	}
	if err := s.sessions.SetRefreshToken(ctx, user.ID, auth.HashToken(pair.RefreshToken), s.tokens.RefreshTTL()); err != nil {
		return nil, errors.NewInternalError("Failed to store session", err)
	}
	return pair, nil
}
