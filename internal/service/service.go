// service содержит бизнес-логику видеоплатформы: жизненный цикл
// сессионных токенов, координацию записи ассетов между объектным
// хранилищем и хранилищем метаданных, CRUD видео/комментариев/подписок.
//
// Основные аспекты:
//   - Service не хранит состояние запроса; экземпляр безопасен для
//     конкурентного использования при потокобезопасных хранилищах.
//   - Ошибки возвращаются sentinel-значениями и далее маппятся
//     транспортом на HTTP-статусы (см. комментарии ниже).
package service

import (
	"errors"
	"io"

	"github.com/pribylovaa/go-video-platform/internal/config"
	"github.com/pribylovaa/go-video-platform/internal/storage"
)

var (
	// ErrInvalidArgument — запрос нарушает валидацию (поля, тип/размер файла).
	// Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidCursor — битый или чужой page_token. Транспорт: HTTP 400.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidEmail — e-mail имеет некорректный формат. Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политике сложности.
	// Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidCredentials — пара логин/пароль неверна или аккаунт не найден.
	// Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingToken — токен не предъявлен (нет cookie и нет поля тела).
	// Транспорт: HTTP 401.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken — токен некорректен по формату или подписи.
	// Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrStaleToken — refresh-токен структурно валиден, но слот аккаунта
	// содержит другой хэш: ротация/логин в другом клиенте, повторное
	// использование или logout. Транспорт: HTTP 401.
	ErrStaleToken = errors.New("stale refresh token")

	// ErrForbidden — запрашивающий не владелец ресурса. Транспорт: HTTP 403.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound — запись не найдена. Транспорт: HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists — конфликт уникальности (username/email/подписка).
	// Транспорт: HTTP 409.
	ErrAlreadyExists = errors.New("already exists")

	// ErrAssetUploadFailed — сбой загрузки в объектное хранилище;
	// метаданные не менялись. Транспорт: HTTP 502.
	ErrAssetUploadFailed = errors.New("asset upload failed")

	// ErrPersistFailed — сбой фиксации метаданных; загруженные в рамках
	// операции ассеты удалены компенсацией. Транспорт: HTTP 500.
	ErrPersistFailed = errors.New("persist failed")

	// ErrInternal — прочие ошибки хранилищ/инфраструктуры. Транспорт: HTTP 500.
	ErrInternal = errors.New("internal error")
)

// FileUpload — бинарное содержимое, принятое транспортом (multipart).
// Валидацию типа и размера выполняет объектное хранилище.
type FileUpload struct {
	ContentType string
	Size        int64
	Data        io.Reader
}

// Service описывает бизнес-логику видеоплатформы.
type Service struct {
	cfg           *config.Config
	users         storage.UserStorage
	videos        storage.VideoStorage
	comments      storage.CommentStorage
	subscriptions storage.SubscriptionStorage
	assets        storage.AssetStorage
}

// New создаёт новый экземпляр Service.
func New(
	cfg *config.Config,
	users storage.UserStorage,
	videos storage.VideoStorage,
	comments storage.CommentStorage,
	subscriptions storage.SubscriptionStorage,
	assets storage.AssetStorage,
) *Service {
	return &Service{
		cfg:           cfg,
		users:         users,
		videos:        videos,
		comments:      comments,
		subscriptions: subscriptions,
		assets:        assets,
	}
}
