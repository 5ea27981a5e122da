package storage

import (
	"context"

	"github.com/pribylovaa/go-video-platform/internal/models"
)

// CommentStorage выполняет операции над комментариями.
type CommentStorage interface {
	// CreateComment вставляет комментарий и возвращает его с заполненным ID.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)

	// CommentByID возвращает комментарий по hex-идентификатору.
	// Возможные ошибки: ErrNotFound.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByVideo возвращает страницу комментариев видео (created_at DESC).
	// При некорректном page_token — ErrInvalidCursor.
	ListByVideo(ctx context.Context, videoID string, p models.ListParams) (*models.CommentPage, error)

	// UpdateComment заменяет текст комментария. Возможные ошибки: ErrNotFound.
	UpdateComment(ctx context.Context, id, content string) (*models.Comment, error)

	// DeleteComment удаляет комментарий. Возможные ошибки: ErrNotFound.
	DeleteComment(ctx context.Context, id string) error
}
