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

// CreateComment вставляет комментарий и возвращает его с заполненным ID.
func (m *Mongo) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	now := toMS(time.Now())
	comment.CreatedAt = now
	comment.UpdatedAt = now

	res, err := m.comments.InsertOne(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	comment.ID = oid.Hex()
	return &comment, nil
}

// CommentByID возвращает комментарий по hex-идентификатору.
func (m *Mongo) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var comment models.Comment
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&comment); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &comment, nil
}

// ListByVideo возвращает страницу комментариев видео: created_at DESC,
// tie-break по _id DESC. Схема курсора та же, что и у видео.
func (m *Mongo) ListByVideo(ctx context.Context, videoID string, p models.ListParams) (*models.CommentPage, error) {
	const op = "storage/mongo/ListByVideo"

	match := bson.D{{Key: "video_id", Value: strings.TrimSpace(videoID)}}

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

	cur, err := m.comments.Find(ctx, match, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Comment
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	page := &models.CommentPage{}
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

// UpdateComment заменяет текст комментария и возвращает новую версию.
func (m *Mongo) UpdateComment(ctx context.Context, id, content string) (*models.Comment, error) {
	const op = "storage/mongo/UpdateComment"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var comment models.Comment
	err = m.comments.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
		opts,
	).Decode(&comment)

	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &comment, nil
}

// DeleteComment удаляет комментарий.
func (m *Mongo) DeleteComment(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteComment"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.CommentStorage = (*Mongo)(nil)
