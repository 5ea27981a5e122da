// storage задаёт контракты хранилищ и общие sentinel-ошибки.
// Реализации: postgres (аккаунты), mongo (видео/комментарии/подписки),
// minio (бинарные ассеты).
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (username/email/подписка).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidArgument — нарушены ограничения запроса (тип/размер ассета).
	ErrInvalidArgument = errors.New("invalid argument")
)

// ProfileAssetUpdate — частичное обновление ссылок на ассеты профиля.
// Непустой указатель означает замену соответствующей пары key/url.
type ProfileAssetUpdate struct {
	AvatarKey *string
	AvatarURL *string
	CoverKey  *string
	CoverURL  *string
}

// UserStorage выполняет операции над аккаунтами и их refresh-слотом.
type UserStorage interface {
	// SaveUser создаёт новый аккаунт.
	// Возможные ошибки: ErrAlreadyExists при конфликте username/email.
	SaveUser(ctx context.Context, user *models.User) error

	// UserByID находит аккаунт по ID. Возможные ошибки: ErrNotFound.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// UserByLogin находит аккаунт по username либо email (без учёта регистра).
	// Возможные ошибки: ErrNotFound.
	UserByLogin(ctx context.Context, login string) (*models.User, error)

	// SetRefreshToken безусловно перезаписывает refresh-слот аккаунта
	// (логин: предыдущая сессия молча теряет возможность ротации).
	// Возможные ошибки: ErrNotFound.
	SetRefreshToken(ctx context.Context, userID uuid.UUID, hash string) error

	// RotateRefreshToken атомарно заменяет содержимое слота oldHash -> newHash.
	// Возвращает:
	//	(true, nil)  — слот содержал oldHash и заменён сейчас;
	//	(false, nil) — слот не совпал (ротация/логин в другом клиенте,
	//	               повторное использование токена или аккаунт удалён).
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string) (bool, error)

	// ClearRefreshToken обнуляет слот. Идемпотентна: отсутствие аккаунта
	// или уже пустой слот ошибкой не считаются.
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error

	// UpdateProfileAssets фиксирует новые ссылки на ассеты профиля.
	// Возможные ошибки: ErrNotFound.
	UpdateProfileAssets(ctx context.Context, userID uuid.UUID, upd ProfileAssetUpdate) (*models.User, error)
}
