// storage описывает контракты хранилища данных видеохостинга и
// sentinel-ошибки слоя. Реализация для MongoDB находится в подпакете mongo.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (username/email/подписка/лайк).
	ErrAlreadyExists = errors.New("already exists")
	// ErrTokenMismatch — предъявленный refresh-токен не совпадает с сохранённым
	// (сессия уже ротирована, отозвана или завершена).
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя.
	// При нарушении уникальности username/email — ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UserByUsername находит пользователя по имени.
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	// UserByEmail находит пользователя по email (нормализованному).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateRefreshTokenHash безусловно выставляет хэш refresh-токена
	// пользователя (логин) или сбрасывает его пустой строкой (логаут).
	UpdateRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash string) error
	// RotateRefreshTokenHash атомарно заменяет хэш refresh-токена при условии
	// совпадения текущего значения со старым (compare-and-swap).
	// Несовпадение — ErrTokenMismatch; отсутствие пользователя — ErrNotFound.
	RotateRefreshTokenHash(ctx context.Context, userID uuid.UUID, oldHash, newHash string) error
	// DeleteUser удаляет пользователя.
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// ChannelProfile возвращает профиль канала с количеством подписчиков,
	// количеством подписок канала и признаком подписки наблюдателя.
	ChannelProfile(ctx context.Context, channelID, viewerID uuid.UUID) (*models.ChannelProfile, error)
}

// ListVideosParams — параметры поиска/выдачи видео.
//   - Query — подстрока для поиска по title/description (пустая — без фильтра);
//   - OwnerID — фильтр по владельцу (uuid.Nil — без фильтра);
//   - SortBy — имя поля сортировки (created_at|views|title|duration);
//   - SortAsc — направление сортировки;
//   - OnlyPublished — скрыть неопубликованные;
//   - Page/Limit — постраничная выдача (страницы с единицы).
type ListVideosParams struct {
	Query         string
	OwnerID       uuid.UUID
	SortBy        string
	SortAsc       bool
	OnlyPublished bool
	Page          int64
	Limit         int64
}

// VideoStorage выполняет операции над видеороликами.
type VideoStorage interface {
	// SaveVideo создаёт запись видеоролика.
	SaveVideo(ctx context.Context, video *models.Video) error
	// VideoByID находит видеоролик по ID.
	VideoByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	// ListVideos возвращает страницу видео по параметрам поиска.
	ListVideos(ctx context.Context, p ListVideosParams) (*models.VideoPage, error)
	// UpdateVideo сохраняет изменяемые поля видеоролика
	// (title, description, thumbnail, updated_at).
	UpdateVideo(ctx context.Context, video *models.Video) error
	// TogglePublishStatus атомарно инвертирует is_published и возвращает
	// обновлённый документ.
	TogglePublishStatus(ctx context.Context, id uuid.UUID) (*models.Video, error)
	// IncrementViews увеличивает счётчик просмотров на единицу.
	IncrementViews(ctx context.Context, id uuid.UUID) error
	// DeleteVideo удаляет видеоролик вместе с его комментариями, лайками
	// и вхождениями в плейлисты.
	DeleteVideo(ctx context.Context, id uuid.UUID) error
}

// CommentStorage выполняет операции над комментариями.
type CommentStorage interface {
	// SaveComment создаёт комментарий.
	SaveComment(ctx context.Context, comment *models.Comment) error
	// CommentByID находит комментарий по ID.
	CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	// ListCommentsByVideo возвращает страницу комментариев видео
	// (сначала новые).
	ListCommentsByVideo(ctx context.Context, videoID uuid.UUID, page, limit int64) (*models.CommentPage, error)
	// UpdateCommentContent обновляет текст комментария.
	UpdateCommentContent(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error)
	// DeleteComment удаляет комментарий и его лайки.
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// LikeStorage выполняет операции над отметками «нравится».
type LikeStorage interface {
	// ToggleLike снимает существующий лайк или ставит новый.
	// Возвращает true, если после вызова лайк стоит.
	ToggleLike(ctx context.Context, target models.LikeTarget, targetID, likedBy uuid.UUID) (bool, error)
	// LikedVideos возвращает видеоролики, отмеченные пользователем.
	LikedVideos(ctx context.Context, likedBy uuid.UUID) ([]models.Video, error)
}

// SubscriptionStorage выполняет операции над подписками.
type SubscriptionStorage interface {
	// ToggleSubscription отменяет существующую подписку или оформляет новую.
	// Возвращает true, если после вызова подписка активна.
	ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	// Subscribers возвращает карточки подписчиков канала.
	Subscribers(ctx context.Context, channelID uuid.UUID) ([]models.ChannelInfo, error)
	// SubscribedChannels возвращает карточки каналов, на которые подписан
	// пользователь.
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.ChannelInfo, error)
}

// PlaylistStorage выполняет операции над плейлистами.
type PlaylistStorage interface {
	// SavePlaylist создаёт плейлист.
	SavePlaylist(ctx context.Context, playlist *models.Playlist) error
	// PlaylistByID находит плейлист по ID.
	PlaylistByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	// PlaylistsByOwner возвращает плейлисты пользователя.
	PlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error)
	// UpdatePlaylistInfo обновляет название и описание плейлиста.
	UpdatePlaylistInfo(ctx context.Context, id uuid.UUID, name, description string) (*models.Playlist, error)
	// AddVideoToPlaylist добавляет видео в плейлист (без дубликатов).
	AddVideoToPlaylist(ctx context.Context, playlistID, videoID uuid.UUID) (*models.Playlist, error)
	// RemoveVideoFromPlaylist убирает видео из плейлиста.
	RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID uuid.UUID) (*models.Playlist, error)
	// DeletePlaylist удаляет плейлист.
	DeletePlaylist(ctx context.Context, id uuid.UUID) error
}

// TweetStorage выполняет операции над твитами.
type TweetStorage interface {
	// SaveTweet создаёт твит.
	SaveTweet(ctx context.Context, tweet *models.Tweet) error
	// TweetByID находит твит по ID.
	TweetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	// TweetsByOwner возвращает твиты пользователя вместе с карточкой автора
	// (сначала новые).
	TweetsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.TweetWithOwner, error)
	// UpdateTweetContent обновляет текст твита.
	UpdateTweetContent(ctx context.Context, id uuid.UUID, content string) (*models.Tweet, error)
	// DeleteTweet удаляет твит и его лайки.
	DeleteTweet(ctx context.Context, id uuid.UUID) error
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	VideoStorage
	CommentStorage
	LikeStorage
	SubscriptionStorage
	PlaylistStorage
	TweetStorage
	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
