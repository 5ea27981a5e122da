// mongo предоставляет реализации контрактов storage для документных
// сущностей платформы: видео, комментариев и подписок.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-video-platform/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	videosCollection        = "videos"
	commentsCollection      = "comments"
	subscriptionsCollection = "subscriptions"
	defaultDBName           = "videoplatform"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg           *config.Config
	client        *mongodriver.Client
	db            *mongodriver.Database
	videos        *mongodriver.Collection
	comments      *mongodriver.Collection
	subscriptions *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции
// и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.Mongo.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.Mongo.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.Mongo.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:           cfg,
		client:        cli,
		db:            db,
		videos:        db.Collection(videosCollection),
		comments:      db.Collection(commentsCollection),
		subscriptions: db.Collection(subscriptionsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping проверяет доступность БД (для /healthz).
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создаёт индексы, необходимые сервису:
//   - лента видео: owner_id + created_at(desc), is_published + created_at(desc);
//   - комментарии видео: video_id + created_at(desc);
//   - подписки: уникальная пара subscriber_id + channel_id и выборка по channel_id.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	videoModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("owner_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "is_published", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("published_created_desc"),
		},
	}

	if _, err := m.videos.Indexes().CreateMany(ctx, videoModels); err != nil {
		return fmt.Errorf("mongo ensure video indexes: %w", err)
	}

	commentModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "video_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("video_created_desc"),
		},
	}

	if _, err := m.comments.Indexes().CreateMany(ctx, commentModels); err != nil {
		return fmt.Errorf("mongo ensure comment indexes: %w", err)
	}

	subscriptionModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "subscriber_id", Value: 1}, {Key: "channel_id", Value: 1}},
			Options: options.Index().SetName("subscriber_channel_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "channel_id", Value: 1}},
			Options: options.Index().SetName("channel"),
		},
	}

	if _, err := m.subscriptions.Indexes().CreateMany(ctx, subscriptionModels); err != nil {
		return fmt.Errorf("mongo ensure subscription indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
