package models

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget — тип сущности, к которой относится лайк.
type LikeTarget int8

const (
	LikeTargetUnspecified LikeTarget = iota
	LikeTargetVideo
	LikeTargetComment
	LikeTargetTweet
)

func (t LikeTarget) String() string {
	switch t {
	case LikeTargetVideo:
		return "video"
	case LikeTargetComment:
		return "comment"
	case LikeTargetTweet:
		return "tweet"
	default:
		return "unspecified"
	}
}

// Like — отметка «нравится» на видео, комментарии или твите.
// Заполнено РОВНО одно из полей VideoID/CommentID/TweetID (uuid.Nil — «не задано»);
// уникальность пары (цель, пользователь) обеспечивается частичными
// уникальными индексами в хранилище.
type Like struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"video_id,omitempty"`
	CommentID uuid.UUID `json:"comment_id,omitempty"`
	TweetID   uuid.UUID `json:"tweet_id,omitempty"`
	LikedBy   uuid.UUID `json:"liked_by"`
	CreatedAt time.Time `json:"created_at"`
}
