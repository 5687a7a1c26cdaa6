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

// userDoc — представление пользователя в коллекции users.
type userDoc struct {
	ID               string    `bson:"_id"`
	Username         string    `bson:"username"`
	Email            string    `bson:"email"`
	FullName         string    `bson:"full_name"`
	PasswordHash     string    `bson:"password_hash"`
	AvatarURL        string    `bson:"avatar_url"`
	AvatarKey        string    `bson:"avatar_key"`
	CoverImageURL    string    `bson:"cover_image_url,omitempty"`
	CoverImageKey    string    `bson:"cover_image_key,omitempty"`
	RefreshTokenHash string    `bson:"refresh_token_hash"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func userToDoc(u *models.User) userDoc {
	return userDoc{
		ID:               u.ID.String(),
		Username:         u.Username,
		Email:            u.Email,
		FullName:         u.FullName,
		PasswordHash:     u.PasswordHash,
		AvatarURL:        u.AvatarURL,
		AvatarKey:        u.AvatarKey,
		CoverImageURL:    u.CoverImageURL,
		CoverImageKey:    u.CoverImageKey,
		RefreshTokenHash: u.RefreshTokenHash,
		CreatedAt:        toMS(u.CreatedAt),
		UpdatedAt:        toMS(u.UpdatedAt),
	}
}

func (d userDoc) toModel() (*models.User, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:               id,
		Username:         d.Username,
		Email:            d.Email,
		FullName:         d.FullName,
		PasswordHash:     d.PasswordHash,
		AvatarURL:        d.AvatarURL,
		AvatarKey:        d.AvatarKey,
		CoverImageURL:    d.CoverImageURL,
		CoverImageKey:    d.CoverImageKey,
		RefreshTokenHash: d.RefreshTokenHash,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

// SaveUser создаёт нового пользователя.
// Нарушение уникальности username/email -> storage.ErrAlreadyExists.
func (m *Mongo) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage/mongo/SaveUser"

	now := toMS(time.Now())
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := m.users.InsertOne(ctx, userToDoc(user)); err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Mongo) userByFilter(ctx context.Context, op string, filter bson.D) (*models.User, error) {
	var doc userDoc
	if err := m.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UserByID находит пользователя по ID.
func (m *Mongo) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.userByFilter(ctx, "storage/mongo/UserByID", bson.D{{Key: "_id", Value: id.String()}})
}

// UserByUsername находит пользователя по имени.
func (m *Mongo) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.userByFilter(ctx, "storage/mongo/UserByUsername", bson.D{{Key: "username", Value: username}})
}

// UserByEmail находит пользователя по email.
func (m *Mongo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.userByFilter(ctx, "storage/mongo/UserByEmail", bson.D{{Key: "email", Value: email}})
}

// UpdateRefreshTokenHash безусловно выставляет/сбрасывает хэш refresh-токена.
func (m *Mongo) UpdateRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash string) error {
	const op = "storage/mongo/UpdateRefreshTokenHash"

	res, err := m.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "refresh_token_hash", Value: hash},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RotateRefreshTokenHash атомарно заменяет хэш refresh-токена при условии
// совпадения текущего значения со старым (compare-and-swap одним
// FindOneAndUpdate). Несовпадение отличается от отсутствия пользователя
// дополнительным чтением.
func (m *Mongo) RotateRefreshTokenHash(ctx context.Context, userID uuid.UUID, oldHash, newHash string) error {
	const op = "storage/mongo/RotateRefreshTokenHash"

	err := m.users.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "_id", Value: userID.String()},
			{Key: "refresh_token_hash", Value: oldHash},
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "refresh_token_hash", Value: newHash},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
	).Err()
	if err == nil {
		return nil
	}

	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Либо пользователя нет, либо хэш не совпал.
	cnt, cntErr := m.users.CountDocuments(ctx, bson.D{{Key: "_id", Value: userID.String()}})
	if cntErr != nil {
		return fmt.Errorf("%s: %w", op, cntErr)
	}

	if cnt == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return fmt.Errorf("%s: %w", op, storage.ErrTokenMismatch)
}

// DeleteUser удаляет пользователя вместе с его подписками.
func (m *Mongo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/DeleteUser"

	res, err := m.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if _, err := m.subscriptions.DeleteMany(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "subscriber_id", Value: id.String()}},
		bson.D{{Key: "channel_id", Value: id.String()}},
	}}}); err != nil {
		return fmt.Errorf("%s: delete subscriptions: %w", op, err)
	}

	return nil
}

// channelProfileDoc — результат агрегации профиля канала.
type channelProfileDoc struct {
	userDoc          `bson:",inline"`
	SubscribersCount int64 `bson:"subscribers_count"`
	SubscribedCount  int64 `bson:"subscribed_count"`
	IsSubscribed     bool  `bson:"is_subscribed"`
}

// ChannelProfile возвращает профиль канала с агрегатами по подпискам
// и признаком подписки наблюдателя ($lookup по коллекции subscriptions).
func (m *Mongo) ChannelProfile(ctx context.Context, channelID, viewerID uuid.UUID) (*models.ChannelProfile, error) {
	const op = "storage/mongo/ChannelProfile"

	pipeline := mongodriver.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: channelID.String()}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: subscriptionsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel_id"},
			{Key: "as", Value: "subscribers"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: subscriptionsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber_id"},
			{Key: "as", Value: "subscribed_to"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "subscribers_count", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "subscribed_count", Value: bson.D{{Key: "$size", Value: "$subscribed_to"}}},
			{Key: "is_subscribed", Value: bson.D{{Key: "$in", Value: bson.A{
				viewerID.String(), "$subscribers.subscriber_id",
			}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "subscribers", Value: 0},
			{Key: "subscribed_to", Value: 0},
		}}},
	}

	cur, err := m.users.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var docs []channelProfileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	user, err := docs[0].toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.ChannelProfile{
		User:             *user,
		SubscribersCount: docs[0].SubscribersCount,
		SubscribedCount:  docs[0].SubscribedCount,
		IsSubscribed:     docs[0].IsSubscribed,
	}, nil
}
