package storage

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

var (
	// ErrInvalidMedia — нарушены ограничения на загружаемый файл (тип/размер).
	ErrInvalidMedia = errors.New("invalid media")
	// ErrMediaNotFound — объект (ключ) отсутствует в бакете.
	ErrMediaNotFound = errors.New("media not found")
)

// MediaKind — вид загружаемого объекта; определяет префикс ключа
// и применяемые ограничения (картинка/видео).
type MediaKind string

const (
	MediaKindAvatar    MediaKind = "avatars"
	MediaKindCover     MediaKind = "covers"
	MediaKindVideo     MediaKind = "videos"
	MediaKindThumbnail MediaKind = "thumbnails"
)

// UploadParams — параметры загрузки объекта в медиахранилище.
//   - Kind/OwnerID участвуют в ключе объекта;
//   - ContentType и Size валидируются до записи;
//   - Reader отдаёт содержимое файла (ровно Size байт).
type UploadParams struct {
	Kind        MediaKind
	OwnerID     uuid.UUID
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult — результат успешной загрузки.
type UploadResult struct {
	// Key — ключ объекта в бакете (хранится в БД для последующего удаления).
	Key string
	// URL — публичная ссылка на объект.
	URL string
}

// MediaStore — контракт медиахранилища (MinIO/S3).
type MediaStore interface {
	// Upload валидирует и сохраняет объект, возвращая ключ и публичную ссылку.
	// Нарушение ограничений — ErrInvalidMedia.
	Upload(ctx context.Context, p UploadParams) (*UploadResult, error)
	// Remove удаляет объект по ключу. Пустой ключ — no-op.
	Remove(ctx context.Context, key string) error
}
