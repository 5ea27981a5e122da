package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/pkg/log"
	"github.com/pribylovaa/go-video-platform/internal/storage"
)

// UserByID возвращает аккаунт по идентификатору.
func (s *Service) UserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const op = "service/users/UserByID"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UserByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return user, nil
}

// UpdateAvatar заменяет аватар аккаунта через координатор: новый объект
// загружается до фиксации, старый удаляется только после неё.
func (s *Service) UpdateAvatar(ctx context.Context, userID uuid.UUID, file FileUpload) (*models.User, error) {
	const op = "service/users/UpdateAvatar"

	return s.swapProfileAsset(ctx, op, userID, storage.CategoryAvatar, file)
}

// UpdateCoverImage заменяет обложку канала, порядок тот же, что у аватара.
func (s *Service) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file FileUpload) (*models.User, error) {
	const op = "service/users/UpdateCoverImage"

	return s.swapProfileAsset(ctx, op, userID, storage.CategoryCover, file)
}

func (s *Service) swapProfileAsset(ctx context.Context, op string, userID uuid.UUID, category storage.AssetCategory, file FileUpload) (*models.User, error) {
	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UserByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	oldKey := user.AvatarKey
	if category == storage.CategoryCover {
		oldKey = user.CoverKey
	}

	var updated *models.User

	swap := func(ctx context.Context, a models.Asset) error {
		upd := storage.ProfileAssetUpdate{}
		if category == storage.CategoryCover {
			upd.CoverKey, upd.CoverURL = &a.Key, &a.URL
		} else {
			upd.AvatarKey, upd.AvatarURL = &a.Key, &a.URL
		}

		updated, err = s.users.UpdateProfileAssets(ctx, userID, upd)

		return err
	}

	if _, err := s.swapAsset(ctx, userID, category, file, swap, oldKey); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}
