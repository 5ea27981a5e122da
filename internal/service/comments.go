package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/pkg/log"
	"github.com/pribylovaa/go-video-platform/internal/storage"
)

// CreateComment добавляет комментарий под существующее видео.
func (s *Service) CreateComment(ctx context.Context, ownerID uuid.UUID, videoID, content string) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	lg := log.From(ctx).With("op", op, "video_id", videoID, "owner_id", ownerID.String())

	content = strings.TrimSpace(content)
	if ownerID == uuid.Nil || strings.TrimSpace(videoID) == "" || content == "" {
		lg.Warn("invalid argument")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := s.videos.VideoByID(ctx, videoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("video not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on VideoByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	comment, err := s.comments.CreateComment(ctx, models.Comment{
		VideoID: videoID,
		OwnerID: ownerID.String(),
		Content: content,
	})
	if err != nil {
		lg.Error("storage error on CreateComment", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return comment, nil
}

// CommentsByVideo возвращает страницу комментариев видео (новые первыми).
func (s *Service) CommentsByVideo(ctx context.Context, videoID string, p models.ListParams) (*models.CommentPage, error) {
	const op = "service/comments/CommentsByVideo"

	lg := log.From(ctx).With("op", op, "video_id", videoID)

	if strings.TrimSpace(videoID) == "" {
		lg.Warn("invalid argument: empty video_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	page, err := s.comments.ListByVideo(ctx, videoID, p)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCursor) {
			lg.Warn("invalid page token")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		}

		lg.Error("storage error on ListByVideo", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return page, nil
}

// UpdateComment заменяет текст комментария (только владелец).
func (s *Service) UpdateComment(ctx context.Context, requesterID uuid.UUID, commentID, content string) (*models.Comment, error) {
	const op = "service/comments/UpdateComment"

	lg := log.From(ctx).With("op", op, "comment_id", commentID, "requester_id", requesterID.String())

	content = strings.TrimSpace(content)
	if content == "" {
		lg.Warn("invalid argument: empty content")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := s.ownedComment(ctx, op, lg, requesterID, commentID); err != nil {
		return nil, err
	}

	comment, err := s.comments.UpdateComment(ctx, commentID, content)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment disappeared on update")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UpdateComment", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return comment, nil
}

// DeleteComment удаляет комментарий (только владелец).
func (s *Service) DeleteComment(ctx context.Context, requesterID uuid.UUID, commentID string) error {
	const op = "service/comments/DeleteComment"

	lg := log.From(ctx).With("op", op, "comment_id", commentID, "requester_id", requesterID.String())

	if _, err := s.ownedComment(ctx, op, lg, requesterID, commentID); err != nil {
		return err
	}

	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment disappeared on delete")

			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on DeleteComment", "err", err)

		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// ownedComment достаёт комментарий и проверяет владение до мутации.
func (s *Service) ownedComment(ctx context.Context, op string, lg *slog.Logger, requesterID uuid.UUID, commentID string) (*models.Comment, error) {
	if requesterID == uuid.Nil || strings.TrimSpace(commentID) == "" {
		lg.Warn("invalid argument")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	comment, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on CommentByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := assertOwner(op, comment.OwnerID, requesterID.String()); err != nil {
		lg.Warn("requester is not the owner", "owner_id", comment.OwnerID)

		return nil, err
	}

	return comment, nil
}
