package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// likeDoc — представление лайка в коллекции likes.
// Поле цели (video_id/comment_id/tweet_id) присутствует только одно:
// частичные уникальные индексы построены по $exists.
type likeDoc struct {
	ID        string    `bson:"_id"`
	VideoID   string    `bson:"video_id,omitempty"`
	CommentID string    `bson:"comment_id,omitempty"`
	TweetID   string    `bson:"tweet_id,omitempty"`
	LikedBy   string    `bson:"liked_by"`
	CreatedAt time.Time `bson:"created_at"`
}

// likeTargetField возвращает имя поля цели для вида лайка.
func likeTargetField(target models.LikeTarget) (string, error) {
	switch target {
	case models.LikeTargetVideo:
		return "video_id", nil
	case models.LikeTargetComment:
		return "comment_id", nil
	case models.LikeTargetTweet:
		return "tweet_id", nil
	default:
		return "", fmt.Errorf("unknown like target %d", target)
	}
}

// ToggleLike снимает существующий лайк или ставит новый.
//
// Реализация без find-then-branch: сначала DeleteOne по паре (цель,
// пользователь); если удалять было нечего — InsertOne, где гонку двух
// конкурентных вставок разрешает частичный уникальный индекс
// (дубликат трактуется как «лайк уже стоит»).
func (m *Mongo) ToggleLike(ctx context.Context, target models.LikeTarget, targetID, likedBy uuid.UUID) (bool, error) {
	const op = "storage/mongo/ToggleLike"

	field, err := likeTargetField(target)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.D{
		{Key: field, Value: targetID.String()},
		{Key: "liked_by", Value: likedBy.String()},
	}

	res, err := m.likes.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("%s: delete: %w", op, err)
	}

	if res.DeletedCount > 0 {
		return false, nil
	}

	doc := likeDoc{
		ID:        uuid.New().String(),
		LikedBy:   likedBy.String(),
		CreatedAt: toMS(time.Now()),
	}

	switch target {
	case models.LikeTargetVideo:
		doc.VideoID = targetID.String()
	case models.LikeTargetComment:
		doc.CommentID = targetID.String()
	case models.LikeTargetTweet:
		doc.TweetID = targetID.String()
	}

	if _, err := m.likes.InsertOne(ctx, doc); err != nil {
		if isDuplicate(err) {
			return true, nil
		}

		return false, fmt.Errorf("%s: insert: %w", op, err)
	}

	return true, nil
}

// LikedVideos возвращает видеоролики, отмеченные пользователем
// ($lookup по коллекции videos, сначала свежие лайки).
func (m *Mongo) LikedVideos(ctx context.Context, likedBy uuid.UUID) ([]models.Video, error) {
	const op = "storage/mongo/LikedVideos"

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{
			{Key: "liked_by", Value: likedBy.String()},
			{Key: "video_id", Value: bson.D{{Key: "$exists", Value: true}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: videosCollection},
			{Key: "localField", Value: "video_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
		}}},
		{{Key: "$unwind", Value: "$video"}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$video"}}}},
	}

	cur, err := m.likes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var docs []videoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := videoDocsToModels(docs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}
