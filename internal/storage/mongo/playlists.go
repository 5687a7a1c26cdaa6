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

// playlistDoc — представление плейлиста в коллекции playlists.
type playlistDoc struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	VideoIDs    []string  `bson:"video_ids"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func playlistToDoc(p *models.Playlist) playlistDoc {
	return playlistDoc{
		ID:          p.ID.String(),
		OwnerID:     p.OwnerID.String(),
		Name:        p.Name,
		Description: p.Description,
		VideoIDs:    uuidsToStrings(p.VideoIDs),
		CreatedAt:   toMS(p.CreatedAt),
		UpdatedAt:   toMS(p.UpdatedAt),
	}
}

func (d playlistDoc) toModel() (*models.Playlist, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}

	ownerID, err := parseID(d.OwnerID)
	if err != nil {
		return nil, err
	}

	videoIDs, err := stringsToUUIDs(d.VideoIDs)
	if err != nil {
		return nil, err
	}

	return &models.Playlist{
		ID:          id,
		OwnerID:     ownerID,
		Name:        d.Name,
		Description: d.Description,
		VideoIDs:    videoIDs,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// SavePlaylist создаёт плейлист.
func (m *Mongo) SavePlaylist(ctx context.Context, playlist *models.Playlist) error {
	const op = "storage/mongo/SavePlaylist"

	now := toMS(time.Now())
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	if _, err := m.playlists.InsertOne(ctx, playlistToDoc(playlist)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PlaylistByID находит плейлист по ID.
func (m *Mongo) PlaylistByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	const op = "storage/mongo/PlaylistByID"

	var doc playlistDoc
	if err := m.playlists.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	playlist, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return playlist, nil
}

// PlaylistsByOwner возвращает плейлисты пользователя (сначала новые).
func (m *Mongo) PlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error) {
	const op = "storage/mongo/PlaylistsByOwner"

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := m.playlists.Find(ctx, bson.D{{Key: "owner_id", Value: ownerID.String()}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var docs []playlistDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.Playlist, 0, len(docs))
	for _, d := range docs {
		p, err := d.toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *p)
	}

	return items, nil
}

// findOneAndUpdatePlaylist — общий FindOneAndUpdate с возвратом документа
// после изменения.
func (m *Mongo) findOneAndUpdatePlaylist(ctx context.Context, op string, id uuid.UUID, update any) (*models.Playlist, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc playlistDoc
	err := m.playlists.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id.String()}}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	playlist, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return playlist, nil
}

// UpdatePlaylistInfo обновляет название и описание плейлиста.
func (m *Mongo) UpdatePlaylistInfo(ctx context.Context, id uuid.UUID, name, description string) (*models.Playlist, error) {
	return m.findOneAndUpdatePlaylist(ctx, "storage/mongo/UpdatePlaylistInfo", id,
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: name},
			{Key: "description", Value: description},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
	)
}

// AddVideoToPlaylist добавляет видео в плейлист ($addToSet — без дубликатов).
func (m *Mongo) AddVideoToPlaylist(ctx context.Context, playlistID, videoID uuid.UUID) (*models.Playlist, error) {
	return m.findOneAndUpdatePlaylist(ctx, "storage/mongo/AddVideoToPlaylist", playlistID,
		bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: "video_ids", Value: videoID.String()}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}},
		},
	)
}

// RemoveVideoFromPlaylist убирает видео из плейлиста.
func (m *Mongo) RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID uuid.UUID) (*models.Playlist, error) {
	return m.findOneAndUpdatePlaylist(ctx, "storage/mongo/RemoveVideoFromPlaylist", playlistID,
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "video_ids", Value: videoID.String()}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}},
		},
	)
}

// DeletePlaylist удаляет плейлист.
func (m *Mongo) DeletePlaylist(ctx context.Context, id uuid.UUID) error {
	const op = "storage/mongo/DeletePlaylist"

	res, err := m.playlists.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
