// service содержит бизнес-логику видеохостинга: регистрацию и аутентификацию
// пользователей, выпуск/проверку токенов, операции над видео, комментариями,
// лайками, подписками, плейлистами и твитами.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданные хранилища потокобезопасны.
//   - Ошибки возвращаются наверх и маппятся транспортом на HTTP-коды
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"
	"io"

	"github.com/pribylovaa/go-video-hosting/internal/cache"
	"github.com/pribylovaa/go-video-hosting/internal/config"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи.
	// Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked — предъявленный refresh-токен не является текущим
	// (сессия ротирована, отозвана или завершена). Транспорт: HTTP 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrUserExists — username или e-mail уже заняты. Транспорт: HTTP 409.
	ErrUserExists = errors.New("username or email already taken")

	// ErrNotFound — запрошенная сущность не существует. Транспорт: HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied — операция над чужим ресурсом. Транспорт: HTTP 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument — нарушены ограничения запроса. Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidEmail — e-mail имеет некорректный формат. Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политикам сложности.
	// Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidMedia — загружаемый файл не проходит ограничения (тип/размер).
	// Транспорт: HTTP 400.
	ErrInvalidMedia = errors.New("invalid media")
)

// FileUpload — содержимое файла из multipart-запроса,
// передаваемое в медиахранилище.
type FileUpload struct {
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Service описывает бизнес-логику видеохостинга.
type Service struct {
	storage storage.Storage
	media   storage.MediaStore
	cfg     *config.Config
	rcache  cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, media storage.MediaStore, cfg *config.Config) *Service {
	return &Service{
		storage: st,
		media:   media,
		cfg:     cfg,
	}
}

// SetRefreshCache устанавливает кэш refresh-сессий (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}
