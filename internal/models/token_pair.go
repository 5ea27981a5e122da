package models

import "time"

// TokenPair — пара токенов, выдаваемая при регистрации/логине/ротации.
//
// Описание:
//   - AccessToken — короткоживущий JWT для доступа к API; stateless,
//     не хранится на сервере и не отзывается до истечения;
//   - RefreshToken — долгоживущий JWT с отдельным секретом; на сервере
//     хранится только его sha256-хэш в слоте аккаунта;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}
