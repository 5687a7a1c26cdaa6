// mongo предоставляет реализацию storage.Storage на базе MongoDB.
//
// Каждая сущность живёт в своей коллекции; идентификаторы (uuid.UUID)
// хранятся строками в _id. Уникальность username/email, подписок и лайков
// обеспечивается уникальными индексами (для лайков — частичными, по виду цели):
// нарушение конвертируется в storage.ErrAlreadyExists.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-video-hosting/internal/config"
	"github.com/pribylovaa/go-video-hosting/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection         = "users"
	videosCollection        = "videos"
	commentsCollection      = "comments"
	likesCollection         = "likes"
	subscriptionsCollection = "subscriptions"
	playlistsCollection     = "playlists"
	tweetsCollection        = "tweets"

	defaultDBName = "videohosting"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg           *config.Config
	client        *mongodriver.Client
	db            *mongodriver.Database
	users         *mongodriver.Collection
	videos        *mongodriver.Collection
	comments      *mongodriver.Collection
	likes         *mongodriver.Collection
	subscriptions *mongodriver.Collection
	playlists     *mongodriver.Collection
	tweets        *mongodriver.Collection
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Storage = (*Mongo)(nil)

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции
// и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.DB.URL))

	m := &Mongo{
		cfg:           cfg,
		client:        cli,
		db:            db,
		users:         db.Collection(usersCollection),
		videos:        db.Collection(videosCollection),
		comments:      db.Collection(commentsCollection),
		likes:         db.Collection(likesCollection),
		subscriptions: db.Collection(subscriptionsCollection),
		playlists:     db.Collection(playlistsCollection),
		tweets:        db.Collection(tweetsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение с MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт индексы, необходимые сервису:
//   - уникальные username/email пользователей;
//   - поиск/сортировка видео по владельцу и дате;
//   - текстовый поиск по title/description;
//   - комментарии видео по дате (сначала новые);
//   - частичные уникальные индексы лайков по виду цели;
//   - уникальная пара (subscriber_id, channel_id) подписок;
//   - плейлисты и твиты по владельцу.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	create := func(c *mongodriver.Collection, models []mongodriver.IndexModel) error {
		_, err := c.Indexes().CreateMany(ctx, models)
		return err
	}

	likeTargetUnique := func(field string) mongodriver.IndexModel {
		return mongodriver.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}, {Key: "liked_by", Value: 1}},
			Options: options.Index().
				SetName("uniq_" + field + "_liked_by").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}}),
		}
	}

	steps := []struct {
		coll   *mongodriver.Collection
		models []mongodriver.IndexModel
	}{
		{m.users, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("uniq_username").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
		}},
		{m.videos, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("owner_created_desc"),
			},
			{
				Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
				Options: options.Index().SetName("title_description_text"),
			},
		}},
		{m.comments, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "video_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("video_created_desc"),
			},
		}},
		{m.likes, []mongodriver.IndexModel{
			likeTargetUnique("video_id"),
			likeTargetUnique("comment_id"),
			likeTargetUnique("tweet_id"),
			{
				Keys:    bson.D{{Key: "liked_by", Value: 1}},
				Options: options.Index().SetName("liked_by"),
			},
		}},
		{m.subscriptions, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "subscriber_id", Value: 1}, {Key: "channel_id", Value: 1}},
				Options: options.Index().SetName("uniq_subscriber_channel").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "channel_id", Value: 1}},
				Options: options.Index().SetName("channel_id"),
			},
		}},
		{m.playlists, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("owner_created_desc"),
			},
		}},
		{m.tweets, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("owner_created_desc"),
			},
		}},
	}

	for _, s := range steps {
		if err := create(s.coll, s.models); err != nil {
			return fmt.Errorf("mongo ensure indexes (%s): %w", s.coll.Name(), err)
		}
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
