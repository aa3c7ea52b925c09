package service

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// SubscriptionService handles channel subscriptions
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	log           *logger.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	subscriptions repository.SubscriptionRepository,
	users repository.UserRepository,
	log *logger.Logger,
) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, users: users, log: log}
}

// Toggle flips the subscription state and returns the new state
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	channel, err := s.users.GetByID(ctx, channelID)
	if err != nil {
		return false, errors.NewInternalError("Failed to fetch channel", err)
	}
	if channel == nil {
		return false, errors.NewNotFoundError("Channel does not exist")
	}

	subscribed, err := s.subscriptions.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return false, errors.NewInternalError("Failed to toggle subscription", err)
	}
	return subscribed, nil
}

// GetSubscribedChannels returns the channels a user subscribes to
func (s *SubscriptionService) GetSubscribedChannels(ctx context.Context, subscriberID string) ([]*domain.Subscription, error) {
	subscriptions, err := s.subscriptions.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch subscribed channels", err)
	}
	return subscriptions, nil
}

// GetSubscribers returns a channel's subscribers
func (s *SubscriptionService) GetSubscribers(ctx context.Context, channelID string) ([]*domain.Subscription, error) {
	subscriptions, err := s.subscriptions.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to fetch subscribers", err)
	}
	return subscriptions, nil
}
