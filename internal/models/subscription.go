package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription — подписка пользователя на канал.
// Пара (SubscriberID, ChannelID) уникальна.
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	ChannelID    uuid.UUID `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChannelInfo — краткая карточка канала/подписчика для списков подписок.
type ChannelInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
}
