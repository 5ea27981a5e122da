package models

import "time"

// Video — внутренняя доменная модель видеозаписи (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB, наружу/вовнутрь конвертируется в hex-строку;
//   - OwnerID — UUID аккаунта-владельца (строкой, ключ авторизации мутаций);
//   - VideoFile/Thumbnail — ссылки на ассеты в объектном хранилище;
//     запись никогда не фиксируется со ссылкой на недозагруженный ассет.
type Video struct {
	ID          string    `bson:"_id,omitempty"`
	OwnerID     string    `bson:"owner_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	VideoFile   Asset     `bson:"video_file"`
	Thumbnail   Asset     `bson:"thumbnail"`
	Views       int64     `bson:"views"`
	IsPublished bool      `bson:"is_published"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// VideoPage — результат постраничной выдачи видео.
type VideoPage struct {
	Items         []Video
	NextPageToken string
}
