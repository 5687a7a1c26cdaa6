package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist — пользовательская подборка видеороликов.
// VideoIDs хранит порядок добавления; дубликаты не допускаются.
type Playlist struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	VideoIDs    []uuid.UUID `json:"video_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
