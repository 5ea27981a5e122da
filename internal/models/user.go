// models содержит доменные сущности видеоплатформы.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — аккаунт пользователя (канал).
//
// RefreshTokenHash — единственный слот refresh-учётки аккаунта:
// в нём хранится sha256-хэш последнего выданного refresh-токена
// (nil — активной сессии нет). Login/refresh перезаписывают слот,
// logout обнуляет.
type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	FullName         string
	PasswordHash     string
	RefreshTokenHash *string
	AvatarKey        string
	AvatarURL        string
	CoverKey         string
	CoverURL         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
