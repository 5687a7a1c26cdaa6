package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// videoDoc — представление видеоролика в коллекции videos.
type videoDoc struct {
	ID           string    `bson:"_id"`
	OwnerID      string    `bson:"owner_id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	VideoURL     string    `bson:"video_url"`
	VideoKey     string    `bson:"video_key"`
	ThumbnailURL string    `bson:"thumbnail_url"`
	ThumbnailKey string    `bson:"thumbnail_key"`
	Duration     float64   `bson:"duration"`
	Views        int64     `bson:"views"`
	IsPublished  bool      `bson:"is_published"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func videoToDoc(v *models.Video) videoDoc {
	return videoDoc{
		ID:           v.ID.String(),
		OwnerID:      v.OwnerID.String(),
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		VideoKey:     v.VideoKey,
		ThumbnailURL: v.ThumbnailURL,
		ThumbnailKey: v.ThumbnailKey,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    toMS(v.CreatedAt),
		UpdatedAt:    toMS(v.UpdatedAt),
	}
}

func (d videoDoc) toModel() (*models.Video, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}

	ownerID, err := parseID(d.OwnerID)
	if err != nil {
		return nil, err
	}

	return &models.Video{
		ID:           id,
		OwnerID:      ownerID,
		Title:        d.Title,
		Description:  d.Description,
		VideoURL:     d.VideoURL,
		VideoKey:     d.VideoKey,
		ThumbnailURL: d.ThumbnailURL,
		ThumbnailKey: d.ThumbnailKey,
		Duration:     d.Duration,
		Views:        d.Views,
		IsPublished:  d.IsPublished,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func videoDocsToModels(docs []videoDoc) ([]models.Video, error) {
	items := make([]models.Video, 0, len(docs))
	for _, d := range docs {
		v, err := d.toModel()
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return items, nil
}

// SaveVideo создаёт запись видеоролика.
func (m *Mongo) SaveVideo(ctx context.Context, video *models.Video) error {
	const op = "storage/mongo/SaveVideo"

	now := toMS(time.Now())
	video.CreatedAt = now
	video.UpdatedAt = now

	if _, err := m.videos.InsertOne(ctx, videoToDoc(video)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// VideoByID находит видеоролик по ID.
func (m *Mongo) VideoByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	const op = "storage/mongo/VideoByID"

	var doc videoDoc
	if err := m.videos.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	video, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return video, nil
}

// допустимые поля сортировки выдачи видео.
var videoSortFields = map[string]string{
	"created_at": "created_at",
	"views":      "views",
	"title":      "title",
	"duration":   "duration",
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func (m *Mongo) limitOrDefault(limit int64) int64 {
	if limit <= 0 {
		return m.cfg.Limits.DefaultPageSize
	}

	if limit > m.cfg.Limits.MaxPageSize {
		return m.cfg.Limits.MaxPageSize
	}

	return limit
}

// ListVideos возвращает страницу видео по параметрам поиска.
// Поиск по Query — регистронезависимый regex по title/description
// (экранированный, пользовательский ввод не интерпретируется).
func (m *Mongo) ListVideos(ctx context.Context, p storage.ListVideosParams) (*models.VideoPage, error) {
	const op = "storage/mongo/ListVideos"

	filter := bson.D{}
	if p.OnlyPublished {
		filter = append(filter, bson.E{Key: "is_published", Value: true})
	}

	if p.OwnerID != uuid.Nil {
		filter = append(filter, bson.E{Key: "owner_id", Value: p.OwnerID.String()})
	}

	if p.Query != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(p.Query), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
		}})
	}

	total, err := m.videos.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	sortField, ok := videoSortFields[p.SortBy]
	if !ok {
		sortField = "created_at"
	}

	dir := -1
	if p.SortAsc {
		dir = 1
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := m.limitOrDefault(p.Limit)

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := m.videos.Find(ctx, filter, opts)
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

	return &models.VideoPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// UpdateVideo сохраняет изменяемые поля видеоролика.
func (m *Mongo) UpdateVideo(ctx context.Context, video *models.Video) error {
	const op = "storage/mongo/UpdateVideo"

	res, err := m.videos.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: video.ID.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "title", Value: video.Title},
			{Key: "description", Value: video.Description},
			{Key: "thumbnail_url", Value: video.ThumbnailURL},
			{Key: "thumbnail_key", Value: video.ThumbnailKey},
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

// TogglePublishStatus атомарно инвертирует is_published (pipeline-update)
// и возвращает обновлённый документ.
func (m *Mongo) TogglePublishStatus(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	const op = "storage/mongo/TogglePublishStatus"

	update := bson.A{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_published", Value: bson.D{{Key: "$not", Value: "$is_published"}}},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc videoDoc
	if err := m.videos.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id.String()}}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	video, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return video, nil
}

// IncrementViews увеличивает счётчик просмотров на единицу.
func (m *Mongo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/IncrementViews"

	res, err := m.videos.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteVideo удаляет видеоролик вместе с его комментариями, лайками
// и вхождениями в плейлисты.
func (m *Mongo) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/DeleteVideo"

	res, err := m.videos.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	// Каскад: комментарии, лайки видео и его комментариев, позиции в плейлистах.
	commentIDs := make([]string, 0)
	cur, err := m.comments.Find(ctx, bson.D{{Key: "video_id", Value: id.String()}},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return fmt.Errorf("%s: find comments: %w", op, err)
	}

	var idDocs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &idDocs); err != nil {
		return fmt.Errorf("%s: read comments: %w", op, err)
	}

	for _, d := range idDocs {
		commentIDs = append(commentIDs, d.ID)
	}

	if _, err := m.comments.DeleteMany(ctx, bson.D{{Key: "video_id", Value: id.String()}}); err != nil {
		return fmt.Errorf("%s: delete comments: %w", op, err)
	}

	likeFilter := bson.A{bson.D{{Key: "video_id", Value: id.String()}}}
	if len(commentIDs) > 0 {
		likeFilter = append(likeFilter, bson.D{{Key: "comment_id", Value: bson.D{{Key: "$in", Value: commentIDs}}}})
	}

	if _, err := m.likes.DeleteMany(ctx, bson.D{{Key: "$or", Value: likeFilter}}); err != nil {
		return fmt.Errorf("%s: delete likes: %w", op, err)
	}

	if _, err := m.playlists.UpdateMany(ctx,
		bson.D{{Key: "video_ids", Value: id.String()}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "video_ids", Value: id.String()}}}},
	); err != nil {
		return fmt.Errorf("%s: pull from playlists: %w", op, err)
	}

	return nil
}
