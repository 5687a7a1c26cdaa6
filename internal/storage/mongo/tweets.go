package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tweetDoc — представление твита в коллекции tweets.
type tweetDoc struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"owner_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func tweetToDoc(t *models.Tweet) tweetDoc {
	return tweetDoc{
		ID:        t.ID.String(),
		OwnerID:   t.OwnerID.String(),
		Content:   t.Content,
		CreatedAt: toMS(t.CreatedAt),
		UpdatedAt: toMS(t.UpdatedAt),
	}
}

func (d tweetDoc) toModel() (*models.Tweet, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}

	ownerID, err := parseID(d.OwnerID)
	if err != nil {
		return nil, err
	}

	return &models.Tweet{
		ID:        id,
		OwnerID:   ownerID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// SaveTweet создаёт твит.
func (m *Mongo) SaveTweet(ctx context.Context, tweet *models.Tweet) error {
	const op = "storage/mongo/SaveTweet"

	now := toMS(time.Now())
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	if _, err := m.tweets.InsertOne(ctx, tweetToDoc(tweet)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TweetByID находит твит по ID.
func (m *Mongo) TweetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	const op = "storage/mongo/TweetByID"

	var doc tweetDoc
	if err := m.tweets.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tweet, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tweet, nil
}

// tweetWithOwnerDoc — результат $lookup твита с карточкой автора.
type tweetWithOwnerDoc struct {
	tweetDoc `bson:",inline"`
	Owner    channelInfoDoc `bson:"owner"`
}

// TweetsByOwner возвращает твиты пользователя с карточкой автора
// (сначала новые).
func (m *Mongo) TweetsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.TweetWithOwner, error) {
	const op = "storage/mongo/TweetsByOwner"

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{{Key: "owner_id", Value: ownerID.String()}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "owner_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: "$owner"}},
		{{Key: "$project", Value: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "content", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "updated_at", Value: 1},
			{Key: "owner._id", Value: 1},
			{Key: "owner.username", Value: 1},
			{Key: "owner.full_name", Value: 1},
			{Key: "owner.avatar_url", Value: 1},
		}}},
	}

	cur, err := m.tweets.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var docs []tweetWithOwnerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.TweetWithOwner, 0, len(docs))
	for _, d := range docs {
		tweet, err := d.tweetDoc.toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		ownerCards, err := channelInfoDocsToModels([]channelInfoDoc{d.Owner})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		items = append(items, models.TweetWithOwner{
			Tweet: *tweet,
			Owner: ownerCards[0],
		})
	}

	return items, nil
}

// UpdateTweetContent обновляет текст твита и возвращает обновлённый документ.
func (m *Mongo) UpdateTweetContent(ctx context.Context, id uuid.UUID, content string) (*models.Tweet, error) {
	const op = "storage/mongo/UpdateTweetContent"

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc tweetDoc
	err := m.tweets.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tweet, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tweet, nil
}

// DeleteTweet удаляет твит и его лайки.
func (m *Mongo) DeleteTweet(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/DeleteTweet"

	res, err := m.tweets.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if _, err := m.likes.DeleteMany(ctx, bson.D{{Key: "tweet_id", Value: id.String()}}); err != nil {
		return fmt.Errorf("%s: delete likes: %w", op, err)
	}

	return nil
}
