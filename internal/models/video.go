package models

import (
	"time"

	"github.com/google/uuid"
)

// Video — внутренняя доменная модель видеоролика.
//
// VideoKey/ThumbnailKey — ключи объектов в медиахранилище (для удаления),
// VideoURL/ThumbnailURL — публичные ссылки на них.
type Video struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	VideoKey     string    `json:"-"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ThumbnailKey string    `json:"-"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VideoPage — результат постраничной выдачи видео.
type VideoPage struct {
	Items      []Video `json:"items"`
	TotalCount int64   `json:"total_count"`
	Page       int64   `json:"page"`
	Limit      int64   `json:"limit"`
}
