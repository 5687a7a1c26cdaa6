package models

import (
	"time"

	"github.com/google/uuid"
)

// Tweet — короткая текстовая публикация канала.
type Tweet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TweetWithOwner — твит вместе с краткой карточкой автора (для лент).
type TweetWithOwner struct {
	Tweet
	Owner ChannelInfo `json:"owner"`
}
