package models

import "time"

// Subscription — подписка аккаунта на канал (MongoDB).
// Пара (subscriber_id, channel_id) уникальна.
type Subscription struct {
	ID           string    `bson:"_id,omitempty"`
	SubscriberID string    `bson:"subscriber_id"`
	ChannelID    string    `bson:"channel_id"`
	CreatedAt    time.Time `bson:"created_at"`
}
