package storage

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
)

// AssetCategory — раздел бакета, определяет префикс ключа и ограничения.
type AssetCategory string

const (
	CategoryAvatar    AssetCategory = "avatars"
	CategoryCover     AssetCategory = "covers"
	CategoryVideo     AssetCategory = "videos"
	CategoryThumbnail AssetCategory = "thumbnails"
)

// Kind возвращает тип содержимого раздела.
func (c AssetCategory) Kind() models.AssetKind {
	if c == CategoryVideo {
		return models.AssetKindVideo
	}

	return models.AssetKindImage
}

// UploadAssetInput — параметры загрузки одного бинарного объекта.
type UploadAssetInput struct {
	OwnerID     uuid.UUID
	Category    AssetCategory
	ContentType string
	Size        int64
	Data        io.Reader
}

// AssetStorage — контракт объектного хранилища бинарных ассетов.
//
// Сбои Upload/Delete у вызывающих различаются по назначению вызова:
// компенсационные удаления пробрасывают ошибку, post-commit cleanup —
// только логирует (см. координатор в service).
type AssetStorage interface {
	// UploadAsset валидирует тип/размер согласно конфигу, формирует ключ
	// "<category>/<ownerID>/<uuid>.<ext>" и загружает объект.
	// Возможные ошибки: ErrInvalidArgument (тип/размер), иные — как есть.
	UploadAsset(ctx context.Context, in UploadAssetInput) (*models.Asset, error)

	// DeleteAsset удаляет объект по ключу. Отсутствие объекта ошибкой
	// не считается (удаление идемпотентно).
	DeleteAsset(ctx context.Context, key string) error
}
