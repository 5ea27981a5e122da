package storage

import (
	"context"

	"github.com/pribylovaa/go-video-platform/internal/models"
)

// VideoUpdate — частичное обновление записи видео.
// Thumbnail заменяется целиком (key+url+kind) как единый ассет.
type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *models.Asset
	IsPublished *bool
}

// ListVideosFilter — фильтр выборки видео.
// OwnerID — только видео канала; PublishedOnly — скрывать черновики.
type ListVideosFilter struct {
	OwnerID       string
	PublishedOnly bool
}

// VideoStorage выполняет операции над записями видео.
type VideoStorage interface {
	// CreateVideo вставляет новую запись и возвращает её с заполненным ID.
	CreateVideo(ctx context.Context, video models.Video) (*models.Video, error)

	// VideoByID возвращает запись по hex-идентификатору.
	// Возможные ошибки: ErrNotFound (в т.ч. для битого формата id).
	VideoByID(ctx context.Context, id string) (*models.Video, error)

	// ListVideos возвращает страницу видео (created_at DESC, tie-break по _id).
	// При некорректном page_token — ErrInvalidCursor.
	ListVideos(ctx context.Context, filter ListVideosFilter, p models.ListParams) (*models.VideoPage, error)

	// UpdateVideo применяет частичное обновление и возвращает новую версию.
	// Возможные ошибки: ErrNotFound.
	UpdateVideo(ctx context.Context, id string, upd VideoUpdate) (*models.Video, error)

	// DeleteVideo удаляет запись. Возможные ошибки: ErrNotFound.
	DeleteVideo(ctx context.Context, id string) error

	// IncrementViews увеличивает счётчик просмотров (best-effort).
	IncrementViews(ctx context.Context, id string) error
}
