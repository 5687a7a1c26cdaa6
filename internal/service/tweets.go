package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
)

// CreateTweet публикует твит.
func (s *Service) CreateTweet(ctx context.Context, ownerID uuid.UUID, content string) (*models.Tweet, error) {
	const op = "service.tweets.CreateTweet"

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%s: empty content: %w", op, ErrInvalidArgument)
	}

	tweet := &models.Tweet{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Content: content,
	}

	if err := s.storage.SaveTweet(ctx, tweet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tweet, nil
}

// TweetsByUser возвращает твиты пользователя с карточкой автора.
func (s *Service) TweetsByUser(ctx context.Context, ownerID uuid.UUID) ([]models.TweetWithOwner, error) {
	const op = "service.tweets.TweetsByUser"

	if _, err := s.storage.UserByID(ctx, ownerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.storage.TweetsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpdateTweet изменяет текст твита. Только для автора.
func (s *Service) UpdateTweet(ctx context.Context, actorID, tweetID uuid.UUID, content string) (*models.Tweet, error) {
	const op = "service.tweets.UpdateTweet"

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%s: empty content: %w", op, ErrInvalidArgument)
	}

	if err := s.ownedTweet(ctx, actorID, tweetID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tweet, err := s.storage.UpdateTweetContent(ctx, tweetID, content)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tweet, nil
}

// DeleteTweet удаляет твит. Только для автора.
func (s *Service) DeleteTweet(ctx context.Context, actorID, tweetID uuid.UUID) error {
	const op = "service.tweets.DeleteTweet"

	if err := s.ownedTweet(ctx, actorID, tweetID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteTweet(ctx, tweetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ownedTweet проверяет, что твит принадлежит actorID.
func (s *Service) ownedTweet(ctx context.Context, actorID, tweetID uuid.UUID) error {
	tweet, err := s.storage.TweetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}

		return err
	}

	if tweet.OwnerID != actorID {
		return ErrPermissionDenied
	}

	return nil
}
