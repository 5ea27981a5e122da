package mongo

import (
	"context"
	"errors"
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

// CreateVideo вставляет новую запись видео.
// ID, CreatedAt/UpdatedAt заполняются хранилищем; если ID пустой —
// драйвер сгенерирует новый ObjectID.
func (m *Mongo) CreateVideo(ctx context.Context, video models.Video) (*models.Video, error) {
	const op = "storage/mongo/CreateVideo"

	now := toMS(time.Now())
	video.CreatedAt = now
	video.UpdatedAt = now

	res, err := m.videos.InsertOne(ctx, video)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		// Mongo всегда возвращает ObjectID.
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	video.ID = oid.Hex()
	return &video, nil
}

// VideoByID возвращает запись по hex-идентификатору.
// Битый формат id неотличим для клиента от отсутствия записи — ErrNotFound.
func (m *Mongo) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	const op = "storage/mongo/VideoByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var video models.Video
	if err := m.videos.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&video); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &video, nil
}

// ListVideos возвращает страницу видео: created_at DESC, tie-break по _id DESC.
// Запрашиваем limit+1 документов, чтобы понять, есть ли следующая страница.
func (m *Mongo) ListVideos(ctx context.Context, filter storage.ListVideosFilter, p models.ListParams) (*models.VideoPage, error) {
	const op = "storage/mongo/ListVideos"

	match := bson.D{}
	if filter.PublishedOnly {
		match = append(match, bson.E{Key: "is_published", Value: true})
	}
	if filter.OwnerID != "" {
		match = append(match, bson.E{Key: "owner_id", Value: filter.OwnerID})
	}

	if p.PageToken != "" {
		createdAt, oid, err := decodeCursor(p.PageToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "created_at", Value: bson.D{{Key: "$lt", Value: createdAt}}}},
			bson.D{
				{Key: "created_at", Value: createdAt},
				{Key: "_id", Value: bson.D{{Key: "$lt", Value: oid}}},
			},
		}})
	}

	limit := limitOrDefault(m.cfg, p.PageSize)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit + 1)

	cur, err := m.videos.Find(ctx, match, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Video
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	page := &models.VideoPage{}
	if int64(len(items)) > limit {
		items = items[:limit]
		last := items[len(items)-1]

		oid, err := primitive.ObjectIDFromHex(last.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: cursor id: %w", op, err)
		}

		page.NextPageToken = encodeCursor(last.CreatedAt, oid)
	}

	page.Items = items
	return page, nil
}

// UpdateVideo применяет частичное обновление и возвращает новую версию документа.
func (m *Mongo) UpdateVideo(ctx context.Context, id string, upd storage.VideoUpdate) (*models.Video, error) {
	const op = "storage/mongo/UpdateVideo"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	set := bson.D{{Key: "updated_at", Value: toMS(time.Now())}}

	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *upd.Description})
	}
	if upd.Thumbnail != nil {
		set = append(set, bson.E{Key: "thumbnail", Value: *upd.Thumbnail})
	}
	if upd.IsPublished != nil {
		set = append(set, bson.E{Key: "is_published", Value: *upd.IsPublished})
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var video models.Video
	err = m.videos.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&video)

	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &video, nil
}

// DeleteVideo удаляет запись видео.
func (m *Mongo) DeleteVideo(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteVideo"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.videos.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// IncrementViews увеличивает счётчик просмотров.
func (m *Mongo) IncrementViews(ctx context.Context, id string) error {
	const op = "storage/mongo/IncrementViews"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	_, err = m.videos.UpdateByID(ctx, oid, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.VideoStorage = (*Mongo)(nil)
