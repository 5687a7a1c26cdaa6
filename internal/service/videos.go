package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
	"github.com/pribylovaa/go-video-hosting/pkg/log"
)

// CreateVideoParams — данные публикации нового видеоролика.
// VideoFile обязателен, Thumbnail опционален.
type CreateVideoParams struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *FileUpload
	Thumbnail   *FileUpload
}

// UpdateVideoParams — частичное обновление видеоролика.
// nil-поле означает «не менять».
type UpdateVideoParams struct {
	Title       *string
	Description *string
	Thumbnail   *FileUpload
}

// CreateVideo загружает файлы в медиахранилище и создаёт запись видеоролика.
// Новый ролик создаётся неопубликованным.
func (s *Service) CreateVideo(ctx context.Context, ownerID uuid.UUID, p CreateVideoParams) (*models.Video, error) {
	const op = "service.videos.CreateVideo"

	lg := log.From(ctx)

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("%s: empty title: %w", op, ErrInvalidArgument)
	}

	if p.VideoFile == nil {
		return nil, fmt.Errorf("%s: video file is required: %w", op, ErrInvalidArgument)
	}

	videoObj, err := s.uploadMedia(ctx, storage.MediaKindVideo, ownerID, p.VideoFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var thumbKey, thumbURL string
	if p.Thumbnail != nil {
		thumb, err := s.uploadMedia(ctx, storage.MediaKindThumbnail, ownerID, p.Thumbnail)
		if err != nil {
			s.removeMedia(ctx, videoObj.Key)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		thumbKey, thumbURL = thumb.Key, thumb.URL
	}

	video := &models.Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		Description:  strings.TrimSpace(p.Description),
		VideoURL:     videoObj.URL,
		VideoKey:     videoObj.Key,
		ThumbnailURL: thumbURL,
		ThumbnailKey: thumbKey,
		Duration:     p.Duration,
		IsPublished:  false,
	}

	if err := s.storage.SaveVideo(ctx, video); err != nil {
		s.removeMedia(ctx, videoObj.Key)
		s.removeMedia(ctx, thumbKey)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("video_created",
		slog.String("op", op),
		slog.String("video_id", video.ID.String()),
		slog.String("owner_id", ownerID.String()),
	)

	return video, nil
}

// ListVideos возвращает страницу видео по параметрам поиска.
// Неопубликованные ролики видны только их владельцу (фильтр по OwnerID,
// совпадающему с наблюдателем).
func (s *Service) ListVideos(ctx context.Context, viewerID uuid.UUID, p storage.ListVideosParams) (*models.VideoPage, error) {
	const op = "service.videos.ListVideos"

	p.OnlyPublished = p.OwnerID == uuid.Nil || p.OwnerID != viewerID

	page, err := s.storage.ListVideos(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// VideoByID возвращает видеоролик и засчитывает просмотр.
// Неопубликованный ролик доступен только владельцу.
func (s *Service) VideoByID(ctx context.Context, viewerID, videoID uuid.UUID) (*models.Video, error) {
	const op = "service.videos.VideoByID"

	video, err := s.storage.VideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if video.OwnerID != viewerID {
		if err := s.storage.IncrementViews(ctx, videoID); err != nil {
			// Потеря просмотра не критична для выдачи.
			log.From(ctx).Warn("increment_views_failed",
				slog.String("video_id", videoID.String()),
				slog.String("err", err.Error()),
			)
		} else {
			video.Views++
		}
	}

	return video, nil
}

// UpdateVideo обновляет метаданные видеоролика. Только для владельца.
func (s *Service) UpdateVideo(ctx context.Context, actorID, videoID uuid.UUID, p UpdateVideoParams) (*models.Video, error) {
	const op = "service.videos.UpdateVideo"

	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, fmt.Errorf("%s: empty title: %w", op, ErrInvalidArgument)
		}
		video.Title = title
	}

	if p.Description != nil {
		video.Description = strings.TrimSpace(*p.Description)
	}

	oldThumbKey := ""
	if p.Thumbnail != nil {
		thumb, err := s.uploadMedia(ctx, storage.MediaKindThumbnail, actorID, p.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		oldThumbKey = video.ThumbnailKey
		video.ThumbnailKey = thumb.Key
		video.ThumbnailURL = thumb.URL
	}

	if err := s.storage.UpdateVideo(ctx, video); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.removeMedia(ctx, oldThumbKey)

	return video, nil
}

// TogglePublishStatus переключает публикацию видеоролика. Только для владельца.
func (s *Service) TogglePublishStatus(ctx context.Context, actorID, videoID uuid.UUID) (*models.Video, error) {
	const op = "service.videos.TogglePublishStatus"

	if _, err := s.ownedVideo(ctx, actorID, videoID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	video, err := s.storage.TogglePublishStatus(ctx, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return video, nil
}

// DeleteVideo удаляет видеоролик вместе с медиафайлами и зависимыми
// сущностями. Только для владельца.
func (s *Service) DeleteVideo(ctx context.Context, actorID, videoID uuid.UUID) error {
	const op = "service.videos.DeleteVideo"

	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteVideo(ctx, videoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.removeMedia(ctx, video.VideoKey)
	s.removeMedia(ctx, video.ThumbnailKey)

	return nil
}

// ownedVideo загружает видеоролик и проверяет, что им владеет actorID.
func (s *Service) ownedVideo(ctx context.Context, actorID, videoID uuid.UUID) (*models.Video, error) {
	video, err := s.storage.VideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	if video.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}

	return video, nil
}
