package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/pkg/log"
	"github.com/pribylovaa/go-video-platform/internal/storage"
)

// PublishVideoInput — параметры публикации видео.
// VideoFile и Thumbnail обязательны: запись не фиксируется без обоих ассетов.
type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   FileUpload
	Thumbnail   FileUpload
}

// UpdateVideoInput — частичное обновление видео.
// Thumbnail != nil заменяет превью через координатор (swap).
type UpdateVideoInput struct {
	Title       *string
	Description *string
	Thumbnail   *FileUpload
}

// PublishVideo загружает файл видео и превью, затем фиксирует запись.
// Сбой на любом шаге не оставляет ни осиротевших объектов, ни записи
// со ссылкой на недозагруженный ассет.
func (s *Service) PublishVideo(ctx context.Context, ownerID uuid.UUID, input PublishVideoInput) (*models.Video, error) {
	const op = "service/videos/PublishVideo"

	lg := log.From(ctx).With("op", op, "owner_id", ownerID.String())

	if ownerID == uuid.Nil {
		lg.Warn("invalid argument: empty owner_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		lg.Warn("invalid argument: empty title")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	video := models.Video{
		OwnerID:     ownerID.String(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		IsPublished: true,
	}

	steps := []uploadStep{
		{
			category: storage.CategoryVideo,
			file:     input.VideoFile,
			assign:   func(a models.Asset) { video.VideoFile = a },
		},
		{
			category: storage.CategoryThumbnail,
			file:     input.Thumbnail,
			assign:   func(a models.Asset) { video.Thumbnail = a },
		},
	}

	var created *models.Video

	err := s.createWithAssets(ctx, ownerID, steps, func(ctx context.Context) error {
		res, err := s.videos.CreateVideo(ctx, video)
		if err != nil {
			return err
		}

		created = res

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// VideoByID возвращает видео и best-effort увеличивает счётчик просмотров.
func (s *Service) VideoByID(ctx context.Context, videoID string) (*models.Video, error) {
	const op = "service/videos/VideoByID"

	lg := log.From(ctx).With("op", op, "video_id", videoID)

	video, err := s.videos.VideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("video not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on VideoByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		// Потерянный просмотр не причина отдавать ошибку.
		lg.Warn("increment views failed", "err", err)
	} else {
		video.Views++
	}

	return video, nil
}

// ListVideos возвращает страницу видео по фильтру (канал/опубликованность).
func (s *Service) ListVideos(ctx context.Context, filter storage.ListVideosFilter, p models.ListParams) (*models.VideoPage, error) {
	const op = "service/videos/ListVideos"

	lg := log.From(ctx).With("op", op)

	page, err := s.videos.ListVideos(ctx, filter, p)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCursor) {
			lg.Warn("invalid page token")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		}

		lg.Error("storage error on ListVideos", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return page, nil
}

// UpdateVideo обновляет title/description и/или заменяет превью.
// Замена превью идёт через координатор: новый объект до фиксации,
// старый — после.
func (s *Service) UpdateVideo(ctx context.Context, requesterID uuid.UUID, videoID string, input UpdateVideoInput) (*models.Video, error) {
	const op = "service/videos/UpdateVideo"

	lg := log.From(ctx).With("op", op, "video_id", videoID, "requester_id", requesterID.String())

	video, err := s.ownedVideo(ctx, op, lg, requesterID, videoID)
	if err != nil {
		return nil, err
	}

	upd := storage.VideoUpdate{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			lg.Warn("invalid argument: empty title in update")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		upd.Title = &title
	}

	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		upd.Description = &desc
	}

	if input.Thumbnail == nil {
		result, err := s.videos.UpdateVideo(ctx, videoID, upd)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Warn("video disappeared on update")

				return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
			}

			lg.Error("storage error on UpdateVideo", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		return result, nil
	}

	var result *models.Video

	swap := func(ctx context.Context, a models.Asset) error {
		upd.Thumbnail = &a

		res, err := s.videos.UpdateVideo(ctx, videoID, upd)
		if err != nil {
			return err
		}

		result = res

		return nil
	}

	if _, err := s.swapAsset(ctx, requesterID, storage.CategoryThumbnail, *input.Thumbnail, swap, video.Thumbnail.Key); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// TogglePublish переключает флаг публикации видео.
func (s *Service) TogglePublish(ctx context.Context, requesterID uuid.UUID, videoID string) (*models.Video, error) {
	const op = "service/videos/TogglePublish"

	lg := log.From(ctx).With("op", op, "video_id", videoID, "requester_id", requesterID.String())

	video, err := s.ownedVideo(ctx, op, lg, requesterID, videoID)
	if err != nil {
		return nil, err
	}

	next := !video.IsPublished

	result, err := s.videos.UpdateVideo(ctx, videoID, storage.VideoUpdate{IsPublished: &next})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("video disappeared on toggle")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UpdateVideo", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// DeleteVideo удаляет видео: сначала коммит удаления записи, затем
// best-effort удаление ассетов. Обратный порядок мог бы оставить запись,
// указывающую на уже удалённые объекты.
func (s *Service) DeleteVideo(ctx context.Context, requesterID uuid.UUID, videoID string) error {
	const op = "service/videos/DeleteVideo"

	lg := log.From(ctx).With("op", op, "video_id", videoID, "requester_id", requesterID.String())

	video, err := s.ownedVideo(ctx, op, lg, requesterID, videoID)
	if err != nil {
		return err
	}

	if err := s.videos.DeleteVideo(ctx, videoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("video disappeared on delete")

			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on DeleteVideo", "err", err)

		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	s.cleanupAssets(ctx, lg, video.VideoFile.Key, video.Thumbnail.Key)

	return nil
}

// ownedVideo достаёт видео и проверяет владение до любых мутаций.
func (s *Service) ownedVideo(ctx context.Context, op string, lg *slog.Logger, requesterID uuid.UUID, videoID string) (*models.Video, error) {
	if requesterID == uuid.Nil || strings.TrimSpace(videoID) == "" {
		lg.Warn("invalid argument")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	video, err := s.videos.VideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("video not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on VideoByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := assertOwner(op, video.OwnerID, requesterID.String()); err != nil {
		lg.Warn("requester is not the owner", "owner_id", video.OwnerID)

		return nil, err
	}

	return video, nil
}
