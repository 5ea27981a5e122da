package storage

import (
	"context"

	"github.com/pribylovaa/go-video-platform/internal/models"
)

// SubscriptionStorage выполняет операции над подписками.
type SubscriptionStorage interface {
	// Subscribe создаёт подписку subscriber -> channel.
	// Возможные ошибки: ErrAlreadyExists при повторной подписке.
	Subscribe(ctx context.Context, sub models.Subscription) (*models.Subscription, error)

	// Unsubscribe удаляет подписку. Возможные ошибки: ErrNotFound.
	Unsubscribe(ctx context.Context, subscriberID, channelID string) error

	// ChannelsBySubscriber возвращает все подписки аккаунта (новые первыми).
	ChannelsBySubscriber(ctx context.Context, subscriberID string) ([]models.Subscription, error)

	// CountSubscribers возвращает число подписчиков канала.
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
}
