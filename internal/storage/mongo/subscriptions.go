package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Subscribe создаёт подписку subscriber -> channel.
// Уникальный индекс (subscriber_id, channel_id) превращает повтор в ErrAlreadyExists.
func (m *Mongo) Subscribe(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage/mongo/Subscribe"

	sub.CreatedAt = toMS(time.Now())

	res, err := m.subscriptions.InsertOne(ctx, sub)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	sub.ID = oid.Hex()
	return &sub, nil
}

// Unsubscribe удаляет подписку по паре идентификаторов.
func (m *Mongo) Unsubscribe(ctx context.Context, subscriberID, channelID string) error {
	const op = "storage/mongo/Unsubscribe"

	res, err := m.subscriptions.DeleteOne(ctx, bson.D{
		{Key: "subscriber_id", Value: strings.TrimSpace(subscriberID)},
		{Key: "channel_id", Value: strings.TrimSpace(channelID)},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ChannelsBySubscriber возвращает подписки аккаунта, новые первыми.
func (m *Mongo) ChannelsBySubscriber(ctx context.Context, subscriberID string) ([]models.Subscription, error) {
	const op = "storage/mongo/ChannelsBySubscriber"

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := m.subscriptions.Find(ctx, bson.D{
		{Key: "subscriber_id", Value: strings.TrimSpace(subscriberID)},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Subscription
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return items, nil
}

// CountSubscribers возвращает число подписчиков канала.
func (m *Mongo) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	const op = "storage/mongo/CountSubscribers"

	n, err := m.subscriptions.CountDocuments(ctx, bson.D{
		{Key: "channel_id", Value: strings.TrimSpace(channelID)},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.SubscriptionStorage = (*Mongo)(nil)
