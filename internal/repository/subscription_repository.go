package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/pkg/database"
)

type PostgresSubscriptionRepository struct {
	db *database.PostgresDB
}

func NewSubscriptionRepository(db *database.PostgresDB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// Toggle flips the subscription state for (subscriber, channel). Same
// insert-first pattern as likes: the unique index arbitrates races.
func (r *PostgresSubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	insert := `
		INSERT INTO subscriptions (id, subscriber_id, channel_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	`
	tag, err := r.db.Pool.Exec(ctx, insert, uuid.NewString(), subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle subscription: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	del := `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`
	if _, err := r.db.Pool.Exec(ctx, del, subscriberID, channelID); err != nil {
		return false, fmt.Errorf("failed to remove subscription: %w", err)
	}
	return false, nil
}

// CountSubscribers returns how many users subscribe to a channel
func (r *PostgresSubscriptionRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM subscriptions WHERE channel_id = $1`
	if err := r.db.Pool.QueryRow(ctx, query, channelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

// CountSubscribedTo returns how many channels a user subscribes to
func (r *PostgresSubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID string) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM subscriptions WHERE subscriber_id = $1`
	if err := r.db.Pool.QueryRow(ctx, query, subscriberID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscribed channels: %w", err)
	}
	return count, nil
}

// IsSubscribed reports whether the subscriber follows the channel
func (r *PostgresSubscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2)`
	if err := r.db.Pool.QueryRow(ctx, query, subscriberID, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return exists, nil
}

// ListSubscribedChannels returns a user's subscriptions, channels populated
func (r *PostgresSubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*domain.Subscription, error) {
	query := `
		SELECT s.id, s.subscriber_id, s.channel_id, s.created_at, u.id, u.username, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed channels: %w", err)
	}
	defer rows.Close()

	subscriptions := []*domain.Subscription{}
	for rows.Next() {
		var sub domain.Subscription
		var channel domain.OwnerInfo
		if err := rows.Scan(&sub.ID, &sub.SubscriberID, &sub.ChannelID, &sub.CreatedAt,
			&channel.ID, &channel.Username, &channel.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		sub.Channel = &channel
		subscriptions = append(subscriptions, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subscriptions: %w", err)
	}
	return subscriptions, nil
}

// ListSubscribers returns a channel's subscriptions, subscribers populated
func (r *PostgresSubscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]*domain.Subscription, error) {
	query := `
		SELECT s.id, s.subscriber_id, s.channel_id, s.created_at, u.id, u.username, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	subscriptions := []*domain.Subscription{}
	for rows.Next() {
		var sub domain.Subscription
		var subscriber domain.OwnerInfo
		if err := rows.Scan(&sub.ID, &sub.SubscriberID, &sub.ChannelID, &sub.CreatedAt,
			&subscriber.ID, &subscriber.Username, &subscriber.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		sub.Subscriber = &subscriber
		subscriptions = append(subscriptions, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subscriptions: %w", err)
	}
	return subscriptions, nil
}
