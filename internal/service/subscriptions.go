package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/pkg/log"
	"github.com/pribylovaa/go-video-platform/internal/storage"
)

// Subscribe подписывает аккаунт на канал.
// Повторная подписка — ErrAlreadyExists, подписка на себя — ErrInvalidArgument.
func (s *Service) Subscribe(ctx context.Context, subscriberID, channelID uuid.UUID) (*models.Subscription, error) {
	const op = "service/subscriptions/Subscribe"

	lg := log.From(ctx).With("op", op, "subscriber_id", subscriberID.String(), "channel_id", channelID.String())

	if subscriberID == uuid.Nil || channelID == uuid.Nil {
		lg.Warn("invalid argument: empty id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if subscriberID == channelID {
		lg.Warn("self subscription rejected")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := s.users.UserByID(ctx, channelID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("channel not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UserByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	sub, err := s.subscriptions.Subscribe(ctx, models.Subscription{
		SubscriberID: subscriberID.String(),
		ChannelID:    channelID.String(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Warn("already subscribed")

			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}

		lg.Error("storage error on Subscribe", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return sub, nil
}

// Unsubscribe снимает подписку. Отсутствующая подписка — ErrNotFound.
func (s *Service) Unsubscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	const op = "service/subscriptions/Unsubscribe"

	lg := log.From(ctx).With("op", op, "subscriber_id", subscriberID.String(), "channel_id", channelID.String())

	if subscriberID == uuid.Nil || channelID == uuid.Nil {
		lg.Warn("invalid argument: empty id")

		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	err := s.subscriptions.Unsubscribe(ctx, subscriberID.String(), channelID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("subscription not found")

			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on Unsubscribe", "err", err)

		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// Subscriptions возвращает подписки аккаунта (новые первыми).
func (s *Service) Subscriptions(ctx context.Context, subscriberID uuid.UUID) ([]models.Subscription, error) {
	const op = "service/subscriptions/Subscriptions"

	lg := log.From(ctx).With("op", op, "subscriber_id", subscriberID.String())

	if subscriberID == uuid.Nil {
		lg.Warn("invalid argument: empty subscriber_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	items, err := s.subscriptions.ChannelsBySubscriber(ctx, subscriberID.String())
	if err != nil {
		lg.Error("storage error on ChannelsBySubscriber", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return items, nil
}

// SubscriberCount возвращает число подписчиков канала.
func (s *Service) SubscriberCount(ctx context.Context, channelID uuid.UUID) (int64, error) {
	const op = "service/subscriptions/SubscriberCount"

	lg := log.From(ctx).With("op", op, "channel_id", channelID.String())

	if channelID == uuid.Nil {
		lg.Warn("invalid argument: empty channel_id")

		return 0, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	n, err := s.subscriptions.CountSubscribers(ctx, channelID.String())
	if err != nil {
		lg.Error("storage error on CountSubscribers", "err", err)

		return 0, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return n, nil
}
