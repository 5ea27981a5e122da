package models

// AssetKind — тип бинарного объекта в хранилище.
type AssetKind string

const (
	AssetKindImage AssetKind = "image"
	AssetKindVideo AssetKind = "video"
)

// Asset — бинарный объект (изображение/видео) во внешнем объектном хранилище.
//
//   - Key — стабильный ключ объекта в бакете (внешний идентификатор);
//   - URL — публичный URL для чтения;
//   - Kind — тип содержимого.
//
// Жизненный цикл: создаётся успешной загрузкой; на объект ссылается ровно
// одна запись метаданных; удаляется либо как компенсация (загрузка прошла,
// запись не зафиксировалась), либо как cleanup после успешной замены.
type Asset struct {
	Key  string    `bson:"key"`
	URL  string    `bson:"url"`
	Kind AssetKind `bson:"kind"`
}
