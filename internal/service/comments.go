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

// CreateComment добавляет комментарий к существующему видеоролику.
func (s *Service) CreateComment(ctx context.Context, ownerID, videoID uuid.UUID, content string) (*models.Comment, error) {
	const op = "service.comments.CreateComment"

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%s: empty content: %w", op, ErrInvalidArgument)
	}

	if _, err := s.storage.VideoByID(ctx, videoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comment := &models.Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}

	if err := s.storage.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comment, nil
}

// ListComments возвращает страницу комментариев видео.
func (s *Service) ListComments(ctx context.Context, videoID uuid.UUID, page, limit int64) (*models.CommentPage, error) {
	const op = "service.comments.ListComments"

	if _, err := s.storage.VideoByID(ctx, videoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.storage.ListCommentsByVideo(ctx, videoID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateComment изменяет текст комментария. Только для автора.
func (s *Service) UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, content string) (*models.Comment, error) {
	const op = "service.comments.UpdateComment"

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%s: empty content: %w", op, ErrInvalidArgument)
	}

	if err := s.ownedComment(ctx, actorID, commentID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comment, err := s.storage.UpdateCommentContent(ctx, commentID, content)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comment, nil
}

// DeleteComment удаляет комментарий. Только для автора.
func (s *Service) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	const op = "service.comments.DeleteComment"

	if err := s.ownedComment(ctx, actorID, commentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ownedComment проверяет, что комментарий принадлежит actorID.
func (s *Service) ownedComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	comment, err := s.storage.CommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}

		return err
	}

	if comment.OwnerID != actorID {
		return ErrPermissionDenied
	}

	return nil
}
