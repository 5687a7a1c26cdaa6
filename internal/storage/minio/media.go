package minio

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
)

// Upload валидирует и сохраняет объект в бакете.
// Ключ имеет вид "<kind>/<ownerID>/<uuid>.<ext>"; публичная ссылка
// собирается из cfg.S3.PublicURL.
func (s *MediaStore) Upload(ctx context.Context, p storage.UploadParams) (*storage.UploadResult, error) {
	const op = "storage/minio/Upload"

	maxSize, allowed, err := s.limitsFor(p.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.Size <= 0 || p.Size > maxSize {
		return nil, fmt.Errorf("%s: size %d: %w", op, p.Size, storage.ErrInvalidMedia)
	}

	if !isAllowedContentType(allowed, p.ContentType) {
		return nil, fmt.Errorf("%s: content type %q: %w", op, p.ContentType, storage.ErrInvalidMedia)
	}

	key := path.Join(string(p.Kind), p.OwnerID.String(), uuid.NewString()+extFor(p.ContentType))

	if _, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, p.Reader, p.Size, mclient.PutObjectOptions{
		ContentType: p.ContentType,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &storage.UploadResult{
		Key: key,
		URL: s.publicURL(key),
	}, nil
}

// Remove удаляет объект по ключу. Пустой ключ — no-op; отсутствие объекта
// не считается ошибкой (удаление идемпотентно).
func (s *MediaStore) Remove(ctx context.Context, key string) error {
	const op = "storage/minio/Remove"

	if key == "" {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.cfg.S3.Bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// limitsFor возвращает ограничения (размер, allow-list типов) для вида объекта.
func (s *MediaStore) limitsFor(kind storage.MediaKind) (int64, []string, error) {
	switch kind {
	case storage.MediaKindAvatar, storage.MediaKindCover, storage.MediaKindThumbnail:
		return s.cfg.Media.ImageMaxSizeBytes, s.cfg.Media.ImageContentTypes, nil
	case storage.MediaKindVideo:
		return s.cfg.Media.VideoMaxSizeBytes, s.cfg.Media.VideoContentTypes, nil
	default:
		return 0, nil, fmt.Errorf("unknown media kind %q: %w", kind, storage.ErrInvalidMedia)
	}
}

func (s *MediaStore) publicURL(key string) string {
	base := strings.TrimRight(s.cfg.S3.PublicURL, "/")

	return base + "/" + s.cfg.S3.Bucket + "/" + key
}

// extFor подбирает расширение файла по типу содержимого.
func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	default:
		return ""
	}
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
