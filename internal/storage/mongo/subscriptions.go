package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// subscriptionDoc — представление подписки в коллекции subscriptions.
type subscriptionDoc struct {
	ID           string    `bson:"_id"`
	SubscriberID string    `bson:"subscriber_id"`
	ChannelID    string    `bson:"channel_id"`
	CreatedAt    time.Time `bson:"created_at"`
}

// ToggleSubscription отменяет существующую подписку или оформляет новую.
// Схема та же, что у лайков: DeleteOne, затем InsertOne; гонку вставок
// разрешает уникальный индекс (subscriber_id, channel_id).
func (m *Mongo) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	const op = "storage/mongo/ToggleSubscription"

	filter := bson.D{
		{Key: "subscriber_id", Value: subscriberID.String()},
		{Key: "channel_id", Value: channelID.String()},
	}

	res, err := m.subscriptions.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("%s: delete: %w", op, err)
	}

	if res.DeletedCount > 0 {
		return false, nil
	}

	doc := subscriptionDoc{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID.String(),
		ChannelID:    channelID.String(),
		CreatedAt:    toMS(time.Now()),
	}

	if _, err := m.subscriptions.InsertOne(ctx, doc); err != nil {
		if isDuplicate(err) {
			return true, nil
		}

		return false, fmt.Errorf("%s: insert: %w", op, err)
	}

	return true, nil
}

// channelInfoDoc — карточка пользователя из $lookup по коллекции users.
type channelInfoDoc struct {
	ID        string `bson:"_id"`
	Username  string `bson:"username"`
	FullName  string `bson:"full_name"`
	AvatarURL string `bson:"avatar_url"`
}

func channelInfoDocsToModels(docs []channelInfoDoc) ([]models.ChannelInfo, error) {
	items := make([]models.ChannelInfo, 0, len(docs))
	for _, d := range docs {
		id, err := parseID(d.ID)
		if err != nil {
			return nil, err
		}

		items = append(items, models.ChannelInfo{
			ID:        id,
			Username:  d.Username,
			FullName:  d.FullName,
			AvatarURL: d.AvatarURL,
		})
	}
	return items, nil
}

// listUserCards — общий $lookup подписок на карточки пользователей.
// matchField — поле фильтра, joinField — поле, по которому ищем пользователя.
func (m *Mongo) listUserCards(ctx context.Context, op, matchField, joinField string, id uuid.UUID) ([]models.ChannelInfo, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{{Key: matchField, Value: id.String()}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: joinField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$user"}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "full_name", Value: 1},
			{Key: "avatar_url", Value: 1},
		}}},
	}

	cur, err := m.subscriptions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var docs []channelInfoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := channelInfoDocsToModels(docs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Subscribers возвращает карточки подписчиков канала.
func (m *Mongo) Subscribers(ctx context.Context, channelID uuid.UUID) ([]models.ChannelInfo, error) {
	return m.listUserCards(ctx, "storage/mongo/Subscribers", "channel_id", "subscriber_id", channelID)
}

// SubscribedChannels возвращает карточки каналов, на которые подписан
// пользователь.
func (m *Mongo) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.ChannelInfo, error) {
	return m.listUserCards(ctx, "storage/mongo/SubscribedChannels", "subscriber_id", "channel_id", subscriberID)
}
