package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
)

// ToggleVideoLike переключает лайк видеоролика.
// Возвращает true, если после вызова лайк стоит.
func (s *Service) ToggleVideoLike(ctx context.Context, actorID, videoID uuid.UUID) (bool, error) {
	const op = "service.likes.ToggleVideoLike"

	if _, err := s.storage.VideoByID(ctx, videoID); err != nil {
		return false, s.mapToggleErr(op, err)
	}

	liked, err := s.storage.ToggleLike(ctx, models.LikeTargetVideo, videoID, actorID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return liked, nil
}

// ToggleCommentLike переключает лайк комментария.
func (s *Service) ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (bool, error) {
	const op = "service.likes.ToggleCommentLike"

	if _, err := s.storage.CommentByID(ctx, commentID); err != nil {
		return false, s.mapToggleErr(op, err)
	}

	liked, err := s.storage.ToggleLike(ctx, models.LikeTargetComment, commentID, actorID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return liked, nil
}

// ToggleTweetLike переключает лайк твита.
func (s *Service) ToggleTweetLike(ctx context.Context, actorID, tweetID uuid.UUID) (bool, error) {
	const op = "service.likes.ToggleTweetLike"

	if _, err := s.storage.TweetByID(ctx, tweetID); err != nil {
		return false, s.mapToggleErr(op, err)
	}

	liked, err := s.storage.ToggleLike(ctx, models.LikeTargetTweet, tweetID, actorID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return liked, nil
}

// LikedVideos возвращает видеоролики, отмеченные пользователем.
func (s *Service) LikedVideos(ctx context.Context, actorID uuid.UUID) ([]models.Video, error) {
	const op = "service.likes.LikedVideos"

	videos, err := s.storage.LikedVideos(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return videos, nil
}

func (s *Service) mapToggleErr(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return fmt.Errorf("%s: %w", op, err)
}
