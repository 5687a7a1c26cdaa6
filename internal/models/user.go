// Package models содержит доменные сущности видеохостинга.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — внутренняя доменная модель пользователя (канала).
//
// Важно:
//   - Username/Email уникальны (уникальные индексы в хранилище);
//   - Email хранится нормализованным (lowercase);
//   - PasswordHash — bcrypt-хэш; наружу не сериализуется;
//   - RefreshTokenHash — SHA-256 от текущего refresh-токена;
//     пустая строка означает отсутствие активной сессии.
type User struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	PasswordHash     string    `json:"-"`
	AvatarURL        string    `json:"avatar_url"`
	AvatarKey        string    `json:"-"`
	CoverImageURL    string    `json:"cover_image_url,omitempty"`
	CoverImageKey    string    `json:"-"`
	RefreshTokenHash string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ChannelProfile — публичный профиль канала с агрегатами по подпискам.
type ChannelProfile struct {
	User
	SubscribersCount int64 `json:"subscribers_count"`
	SubscribedCount  int64 `json:"subscribed_count"`
	IsSubscribed     bool  `json:"is_subscribed"`
}
