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

// commentDoc — представление комментария в коллекции comments.
type commentDoc struct {
	ID        string    `bson:"_id"`
	VideoID   string    `bson:"video_id"`
	OwnerID   string    `bson:"owner_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func commentToDoc(c *models.Comment) commentDoc {
	return commentDoc{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		OwnerID:   c.OwnerID.String(),
		Content:   c.Content,
		CreatedAt: toMS(c.CreatedAt),
		UpdatedAt: toMS(c.UpdatedAt),
	}
}

func (d commentDoc) toModel() (*models.Comment, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}

	videoID, err := parseID(d.VideoID)
	if err != nil {
		return nil, err
	}

	ownerID, err := parseID(d.OwnerID)
	if err != nil {
		return nil, err
	}

	return &models.Comment{
		ID:        id,
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// SaveComment создаёт комментарий.
func (m *Mongo) SaveComment(ctx context.Context, comment *models.Comment) error {
	const op = "storage/mongo/SaveComment"

	now := toMS(time.Now())
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := m.comments.InsertOne(ctx, commentToDoc(comment)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CommentByID находит комментарий по ID.
func (m *Mongo) CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	var doc commentDoc
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comment, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comment, nil
}

// ListCommentsByVideo возвращает страницу комментариев видео (сначала новые).
func (m *Mongo) ListCommentsByVideo(ctx context.Context, videoID uuid.UUID, page, limit int64) (*models.CommentPage, error) {
	const op = "storage/mongo/ListCommentsByVideo"

	filter := bson.D{{Key: "video_id", Value: videoID.String()}}

	total, err := m.comments.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	if page < 1 {
		page = 1
	}
	limit = m.limitOrDefault(limit)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := m.comments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.Comment, 0, len(docs))
	for _, d := range docs {
		c, err := d.toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *c)
	}

	return &models.CommentPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// UpdateCommentContent обновляет текст комментария и возвращает обновлённый
// документ.
func (m *Mongo) UpdateCommentContent(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	const op = "storage/mongo/UpdateCommentContent"

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc commentDoc
	err := m.comments.FindOneAndUpdate(ctx,
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

	comment, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comment, nil
}

// DeleteComment удаляет комментарий и его лайки.
func (m *Mongo) DeleteComment(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/DeleteComment"

	res, err := m.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if _, err := m.likes.DeleteMany(ctx, bson.D{{Key: "comment_id", Value: id.String()}}); err != nil {
		return fmt.Errorf("%s: delete likes: %w", op, err)
	}

	return nil
}
