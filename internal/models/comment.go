package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment — комментарий к видеоролику.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"video_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentPage — результат постраничной выдачи комментариев.
type CommentPage struct {
	Items      []Comment `json:"items"`
	TotalCount int64     `json:"total_count"`
	Page       int64     `json:"page"`
	Limit      int64     `json:"limit"`
}
