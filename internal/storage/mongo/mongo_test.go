package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/config"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/storage"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты пакета mongo: видео, комментарии, подписки.
// Контейнер MongoDB поднимается один раз на пакет (TestMain), каждый тест
// работает со своей БД с уникальным именем.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/mongo -v -race -count=1

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestConfig создаёт конфиг с отдельной тестовой БД.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	baseURL := os.Getenv("DATABASE_URL")
	if baseURL == "" {
		baseURL = "mongodb://localhost:27017"
	}

	return &config.Config{
		Mongo: config.MongoConfig{
			URL: baseURL + "/videoplatform_test_" + uuid.New().String(),
		},
		Limits: config.LimitsConfig{
			Default: 2,
			Max:     100,
		},
	}
}

// mustNewMongo подключается к тестовой БД и регистрирует очистку.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, newTestConfig(t))
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

func seedVideo(t *testing.T, m *Mongo, ownerID string, title string, published bool) *models.Video {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	created, err := m.CreateVideo(ctx, models.Video{
		OwnerID:     ownerID,
		Title:       title,
		VideoFile:   models.Asset{Key: "videos/" + title, Kind: models.AssetKindVideo},
		Thumbnail:   models.Asset{Key: "thumbnails/" + title, Kind: models.AssetKindImage},
		IsPublished: published,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// Разводим created_at соседних документов, чтобы порядок выдачи был детерминирован.
	time.Sleep(5 * time.Millisecond)

	return created
}

func TestIntegration_Videos_CRUD(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	ownerID := uuid.New().String()
	created := seedVideo(t, m, ownerID, "first", true)

	got, err := m.VideoByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "first", got.Title)
	require.Equal(t, ownerID, got.OwnerID)
	require.Equal(t, "videos/first", got.VideoFile.Key)

	// Битый hex и отсутствующий документ дают одинаковый ErrNotFound.
	_, err = m.VideoByID(ctx, "not-a-hex")
	require.ErrorIs(t, err, storage.ErrNotFound)

	title := "renamed"
	upd, err := m.UpdateVideo(ctx, created.ID, storage.VideoUpdate{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "renamed", upd.Title)
	require.True(t, upd.UpdatedAt.After(upd.CreatedAt) || upd.UpdatedAt.Equal(upd.CreatedAt))

	newThumb := models.Asset{Key: "thumbnails/second", Kind: models.AssetKindImage}
	upd, err = m.UpdateVideo(ctx, created.ID, storage.VideoUpdate{Thumbnail: &newThumb})
	require.NoError(t, err)
	require.Equal(t, "thumbnails/second", upd.Thumbnail.Key)

	require.NoError(t, m.IncrementViews(ctx, created.ID))
	require.NoError(t, m.IncrementViews(ctx, created.ID))

	got, err = m.VideoByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Views)

	require.NoError(t, m.DeleteVideo(ctx, created.ID))
	require.ErrorIs(t, m.DeleteVideo(ctx, created.ID), storage.ErrNotFound)

	_, err = m.VideoByID(ctx, created.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Videos_ListPagination(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	ownerID := uuid.New().String()
	for i := 0; i < 5; i++ {
		seedVideo(t, m, ownerID, fmt.Sprintf("v%d", i), true)
	}
	// Черновик и чужое видео в выдачу PublishedOnly+OwnerID не попадают.
	seedVideo(t, m, ownerID, "draft", false)
	seedVideo(t, m, uuid.New().String(), "foreign", true)

	filter := storage.ListVideosFilter{OwnerID: ownerID, PublishedOnly: true}

	// Default=2: первая страница из двух, новые первыми.
	page1, err := m.ListVideos(ctx, filter, models.ListParams{})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.Equal(t, "v4", page1.Items[0].Title)
	require.Equal(t, "v3", page1.Items[1].Title)
	require.NotEmpty(t, page1.NextPageToken)

	page2, err := m.ListVideos(ctx, filter, models.ListParams{PageToken: page1.NextPageToken})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	require.Equal(t, "v2", page2.Items[0].Title)
	require.Equal(t, "v1", page2.Items[1].Title)

	page3, err := m.ListVideos(ctx, filter, models.ListParams{PageToken: page2.NextPageToken})
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	require.Equal(t, "v0", page3.Items[0].Title)
	require.Empty(t, page3.NextPageToken)

	_, err = m.ListVideos(ctx, filter, models.ListParams{PageToken: "broken-token"})
	require.ErrorIs(t, err, storage.ErrInvalidCursor)
}

func TestIntegration_Comments_CRUD_And_Pagination(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	videoID := seedVideo(t, m, uuid.New().String(), "commented", true).ID
	ownerID := uuid.New().String()

	var last *models.Comment
	for i := 0; i < 3; i++ {
		c, err := m.CreateComment(ctx, models.Comment{
			VideoID: videoID,
			OwnerID: ownerID,
			Content: fmt.Sprintf("comment %d", i),
		})
		require.NoError(t, err)
		last = c
		time.Sleep(5 * time.Millisecond)
	}

	got, err := m.CommentByID(ctx, last.ID)
	require.NoError(t, err)
	require.Equal(t, "comment 2", got.Content)

	page1, err := m.ListByVideo(ctx, videoID, models.ListParams{})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.Equal(t, "comment 2", page1.Items[0].Content)
	require.NotEmpty(t, page1.NextPageToken)

	page2, err := m.ListByVideo(ctx, videoID, models.ListParams{PageToken: page1.NextPageToken})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	require.Equal(t, "comment 0", page2.Items[0].Content)
	require.Empty(t, page2.NextPageToken)

	updated, err := m.UpdateComment(ctx, last.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Content)

	require.NoError(t, m.DeleteComment(ctx, last.ID))
	require.ErrorIs(t, m.DeleteComment(ctx, last.ID), storage.ErrNotFound)

	_, err = m.CommentByID(ctx, last.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Subscriptions(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	subscriberID := uuid.New().String()
	channelID := uuid.New().String()

	sub, err := m.Subscribe(ctx, models.Subscription{SubscriberID: subscriberID, ChannelID: channelID})
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID)

	// Уникальный индекс (subscriber_id, channel_id).
	_, err = m.Subscribe(ctx, models.Subscription{SubscriberID: subscriberID, ChannelID: channelID})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	otherChannel := uuid.New().String()
	time.Sleep(5 * time.Millisecond)
	_, err = m.Subscribe(ctx, models.Subscription{SubscriberID: subscriberID, ChannelID: otherChannel})
	require.NoError(t, err)

	items, err := m.ChannelsBySubscriber(ctx, subscriberID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Новые первыми.
	require.Equal(t, otherChannel, items[0].ChannelID)

	n, err := m.CountSubscribers(ctx, channelID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, m.Unsubscribe(ctx, subscriberID, channelID))
	require.ErrorIs(t, m.Unsubscribe(ctx, subscriberID, channelID), storage.ErrNotFound)

	n, err = m.CountSubscribers(ctx, channelID)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}
