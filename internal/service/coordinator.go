package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/pkg/log"
	"github.com/pribylovaa/go-video-platform/internal/storage"
)

// Координатор записи между объектным хранилищем и хранилищем метаданных.
//
// Операция проходит явные состояния:
//
//	uploading -> persisting -> committed
//	          \-> compensating -> failed
//
// Инварианты порядка:
//   - метаданные никогда не фиксируются со ссылкой на недозагруженный ассет
//     (persist вызывается только после успеха всех загрузок);
//   - существующий ассет не удаляется до фиксации его замены
//     (cleanup старого — только после коммита, best-effort);
//   - компенсация идемпотентна (DeleteAsset терпит отсутствие объекта)
//     и выполняется на контексте, отвязанном от отмены клиента.
type txState string

const (
	stateUploading    txState = "uploading"
	statePersisting   txState = "persisting"
	stateCommitted    txState = "committed"
	stateCompensating txState = "compensating"
	stateFailed       txState = "failed"
)

// uploadStep — одна загрузка в составе операции: раздел бакета, содержимое
// и приёмник готового ассета (заполняет поле будущей записи метаданных).
type uploadStep struct {
	category storage.AssetCategory
	file     FileUpload
	assign   func(models.Asset)
}

// createWithAssets выполняет последовательные загрузки и затем persist.
// Сбой любой загрузки удаляет уже загруженные в этой операции объекты;
// сбой persist удаляет все загруженные. Чужие ассеты не затрагиваются.
//
// Ошибки: ErrInvalidArgument (тип/размер), ErrAssetUploadFailed,
// ErrAlreadyExists (конфликт уникальности в persist, после компенсации),
// ErrPersistFailed.
func (s *Service) createWithAssets(ctx context.Context, ownerID uuid.UUID, steps []uploadStep, persist func(context.Context) error) error {
	const op = "service/coordinator/createWithAssets"

	lg := log.From(ctx).With("op", op, "owner_id", ownerID.String())

	state := stateUploading
	uploaded := make([]string, 0, len(steps))

	for _, step := range steps {
		asset, err := s.assets.UploadAsset(ctx, storage.UploadAssetInput{
			OwnerID:     ownerID,
			Category:    step.category,
			ContentType: step.file.ContentType,
			Size:        step.file.Size,
			Data:        step.file.Data,
		})
		if err != nil {
			state = stateCompensating
			lg.Debug("compensating uploads", "state", string(state), "assets", len(uploaded))
			s.compensate(ctx, lg, uploaded)
			state = stateFailed

			if errors.Is(err, storage.ErrInvalidArgument) {
				lg.Warn("upload rejected", "category", string(step.category), "state", string(state))

				return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
			}

			lg.Error("upload failed", "category", string(step.category), "state", string(state), "err", err)

			return fmt.Errorf("%s: %w", op, ErrAssetUploadFailed)
		}

		uploaded = append(uploaded, asset.Key)
		step.assign(*asset)
	}

	state = statePersisting

	if err := persist(ctx); err != nil {
		state = stateCompensating
		lg.Debug("compensating uploads", "state", string(state), "assets", len(uploaded))
		s.compensate(ctx, lg, uploaded)
		state = stateFailed

		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Warn("persist conflict", "state", string(state))

			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}

		lg.Error("persist failed", "state", string(state), "err", err)

		return fmt.Errorf("%s: %w", op, ErrPersistFailed)
	}

	state = stateCommitted
	lg.Debug("create committed", "state", string(state), "assets", len(uploaded))

	return nil
}

// swapAsset заменяет один ассет: загружает новый, фиксирует замену через swap
// и только после коммита удаляет старый объект (best-effort, сбой логируется).
// Сбой swap удаляет новый объект, старые данные остаются нетронутыми.
//
// Ошибки: ErrInvalidArgument, ErrAssetUploadFailed, ErrNotFound (запись
// исчезла на фиксации), ErrPersistFailed.
func (s *Service) swapAsset(ctx context.Context, ownerID uuid.UUID, category storage.AssetCategory, file FileUpload, swap func(context.Context, models.Asset) error, oldKey string) (*models.Asset, error) {
	const op = "service/coordinator/swapAsset"

	lg := log.From(ctx).With("op", op, "owner_id", ownerID.String(), "category", string(category))

	asset, err := s.assets.UploadAsset(ctx, storage.UploadAssetInput{
		OwnerID:     ownerID,
		Category:    category,
		ContentType: file.ContentType,
		Size:        file.Size,
		Data:        file.Data,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidArgument) {
			lg.Warn("upload rejected")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		lg.Error("upload failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrAssetUploadFailed)
	}

	if err := swap(ctx, *asset); err != nil {
		s.compensate(ctx, lg, []string{asset.Key})

		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("swap target not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("swap failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrPersistFailed)
	}

	// Замена зафиксирована: старый объект больше недостижим из метаданных,
	// его удаление — уборка, а не часть транзакции.
	s.cleanupAssets(ctx, lg, oldKey)

	return asset, nil
}

// compensate удаляет объекты, загруженные в рамках несостоявшейся операции.
// Выполняется на отвязанном контексте: отмена клиента не оставляет сирот.
func (s *Service) compensate(ctx context.Context, lg *slog.Logger, keys []string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeouts.Cleanup)
	defer cancel()

	for _, key := range keys {
		if err := s.assets.DeleteAsset(cleanupCtx, key); err != nil {
			// Осиротевший объект хуже потерянной записи не делает:
			// ключ в логе, уборка возможна вручную или фоновым проходом.
			lg.Warn("compensation delete failed", "key", key, "err", err)
		}
	}
}

// cleanupAssets — best-effort удаление вытесненных ассетов после коммита.
// Сбой не влияет на результат операции и наружу не отдаётся.
func (s *Service) cleanupAssets(ctx context.Context, lg *slog.Logger, keys ...string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeouts.Cleanup)
	defer cancel()

	for _, key := range keys {
		if key == "" {
			continue
		}

		if err := s.assets.DeleteAsset(cleanupCtx, key); err != nil {
			lg.Warn("cleanup delete failed", "key", key, "err", err)
		}
	}
}
