package minio

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/storage"
)

// UploadAsset валидирует тип и размер согласно конфигу, формирует ключ вида
// "<category>/<ownerID>/<uuid>.<ext>" и загружает объект в бакет.
// Возвращённый Asset содержит ключ и публичный URL (если PublicBaseURL задан).
func (s *AssetsStorage) UploadAsset(ctx context.Context, in storage.UploadAssetInput) (*models.Asset, error) {
	const op = "storage/minio/UploadAsset"

	maxSize, allowed := s.limitsFor(in.Category)

	if in.Size <= 0 || in.Size > maxSize {
		return nil, storage.ErrInvalidArgument
	}

	if !isAllowedContentType(allowed, in.ContentType) {
		return nil, storage.ErrInvalidArgument
	}

	key := path.Join(string(in.Category), in.OwnerID.String(), uuid.NewString()+extFor(in.ContentType))

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, in.Data, in.Size, mclient.PutObjectOptions{
		ContentType: in.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Asset{
		Key:  key,
		URL:  s.publicURL(key),
		Kind: in.Category.Kind(),
	}, nil
}

// DeleteAsset удаляет объект по ключу. Отсутствие объекта ошибкой не считается:
// удаление идемпотентно, чтобы компенсацию можно было безопасно повторять.
func (s *AssetsStorage) DeleteAsset(ctx context.Context, key string) error {
	const op = "storage/minio/DeleteAsset"

	err := s.client.RemoveObject(ctx, s.cfg.S3.Bucket, key, mclient.RemoveObjectOptions{})
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// limitsFor возвращает ограничения раздела (размер, allow-list типов).
func (s *AssetsStorage) limitsFor(category storage.AssetCategory) (int64, []string) {
	if category == storage.CategoryVideo {
		return s.cfg.Uploads.MaxVideoSizeBytes, s.cfg.Uploads.AllowedVideoTypes
	}

	return s.cfg.Uploads.MaxImageSizeBytes, s.cfg.Uploads.AllowedImageTypes
}

// publicURL собирает публичный URL объекта (пустая строка, если база не задана).
func (s *AssetsStorage) publicURL(key string) string {
	if s.cfg.S3.PublicBaseURL == "" {
		return ""
	}

	return strings.TrimRight(s.cfg.S3.PublicBaseURL, "/") + "/" + key
}

// extFor подбирает расширение файла по типу содержимого.
func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	default:
		return ""
	}
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
