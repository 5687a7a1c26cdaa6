package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
)

// ToggleSubscription оформляет или отменяет подписку на канал.
// Подписка на самого себя запрещена. Возвращает true, если после вызова
// подписка активна.
func (s *Service) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	const op = "service.subscriptions.ToggleSubscription"

	if subscriberID == channelID {
		return false, fmt.Errorf("%s: self subscription: %w", op, ErrInvalidArgument)
	}

	if _, err := s.storage.UserByID(ctx, channelID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	subscribed, err := s.storage.ToggleSubscription(ctx, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return subscribed, nil
}

// Subscribers возвращает подписчиков канала.
func (s *Service) Subscribers(ctx context.Context, channelID uuid.UUID) ([]models.ChannelInfo, error) {
	const op = "service.subscriptions.Subscribers"

	if _, err := s.storage.UserByID(ctx, channelID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.storage.Subscribers(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// SubscribedChannels возвращает каналы, на которые подписан пользователь.
func (s *Service) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.ChannelInfo, error) {
	const op = "service.subscriptions.SubscribedChannels"

	items, err := s.storage.SubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}
