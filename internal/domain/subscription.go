package domain

import "time"

// Subscription is a join entity between a subscriber and a channel (another
// user). At most one subscription exists per (subscriber, channel) pair.
type Subscription struct {
	ID           string     `json:"id"`
	SubscriberID string     `json:"subscriberId"`
	ChannelID    string     `json:"channelId"`
	Subscriber   *OwnerInfo `json:"subscriber,omitempty"`
	Channel      *OwnerInfo `json:"channel,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
