package models

import "time"

// Comment — комментарий под видео (MongoDB, плоская модель без веток).
type Comment struct {
	ID        string    `bson:"_id,omitempty"`
	VideoID   string    `bson:"video_id"`
	OwnerID   string    `bson:"owner_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// CommentPage — результат постраничной выдачи комментариев.
type CommentPage struct {
	Items         []Comment
	NextPageToken string
}
