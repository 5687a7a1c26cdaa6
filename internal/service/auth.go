package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/cache"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
	"github.com/pribylovaa/go-video-hosting/pkg/log"
	"github.com/pribylovaa/go-video-hosting/pkg/redact"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUserParams — данные регистрации нового пользователя.
// Avatar обязателен, Cover опционален.
type RegisterUserParams struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   *FileUpload
	Cover    *FileUpload
}

// RegisterUser регистрирует нового пользователя: валидирует входные данные,
// загружает аватар/обложку в медиахранилище, хэширует пароль (bcrypt)
// и создаёт документ пользователя. Токены при регистрации не выпускаются —
// клиент выполняет вход отдельно.
func (s *Service) RegisterUser(ctx context.Context, p RegisterUserParams) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	lg := log.From(ctx)

	username := strings.TrimSpace(strings.ToLower(p.Username))
	if username == "" {
		return nil, fmt.Errorf("%s: empty username: %w", op, ErrInvalidArgument)
	}

	normEmail, err := validateEmail(p.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if strings.TrimSpace(p.FullName) == "" {
		return nil, fmt.Errorf("%s: empty full name: %w", op, ErrInvalidArgument)
	}

	if err := validatePassword(p.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.Avatar == nil {
		return nil, fmt.Errorf("%s: avatar is required: %w", op, ErrInvalidArgument)
	}

	hashedPassword, err := hashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userID := uuid.New()

	avatar, err := s.uploadMedia(ctx, storage.MediaKindAvatar, userID, p.Avatar)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var coverKey, coverURL string
	if p.Cover != nil {
		cover, err := s.uploadMedia(ctx, storage.MediaKindCover, userID, p.Cover)
		if err != nil {
			s.removeMedia(ctx, avatar.Key)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		coverKey, coverURL = cover.Key, cover.URL
	}

	user := &models.User{
		ID:            userID,
		Username:      username,
		Email:         normEmail,
		FullName:      strings.TrimSpace(p.FullName),
		PasswordHash:  hashedPassword,
		AvatarURL:     avatar.URL,
		AvatarKey:     avatar.Key,
		CoverImageURL: coverURL,
		CoverImageKey: coverKey,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		// Загруженные объекты не должны остаться сиротами.
		s.removeMedia(ctx, avatar.Key)
		s.removeMedia(ctx, coverKey)

		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Warn("register_conflict",
				slog.String("op", op),
				slog.String("username", username),
				slog.String("email", redact.Email(normEmail)),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, nil
}

// LoginUser выполняет вход по username или e-mail + паролю.
// Предыдущая сессия пользователя (если была) отзывается перезаписью
// хэша refresh-токена.
func (s *Service) LoginUser(ctx context.Context, login, password string) (*models.User, *models.TokenPair, error) {
	const op = "service.auth.LoginUser"

	lg := log.From(ctx)

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	var (
		user *models.User
		err  error
	)

	if strings.Contains(login, "@") {
		user, err = s.storage.UserByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.storage.UserByUsername(ctx, strings.ToLower(login))
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Warn("login_wrong_password",
			slog.String("op", op),
			slog.String("email", redact.Email(user.Email)),
		)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, pair, nil
}

// RefreshTokens обновляет пару токенов по refresh-токену.
//
// Предъявленный токен обязан совпадать с сохранённым: совпадение проверяется
// атомарно при ротации хэша (compare-and-swap в хранилище), поэтому
// украденный, но уже ротированный токен отклоняется как ErrTokenRevoked.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.RefreshTokens"

	lg := log.From(ctx)

	uid, err := s.validateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	oldHash := refreshHash(refreshToken)
	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(ctx, user, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	newRefresh, err := s.generateRefreshToken(ctx, user, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.RotateRefreshTokenHash(ctx, user.ID, oldHash, refreshHash(newRefresh)); err != nil {
		switch {
		case errors.Is(err, storage.ErrTokenMismatch):
			lg.Warn("refresh_rotation_rejected",
				slog.String("op", op),
				slog.String("user_id", user.ID.String()),
				slog.String("token", redact.Token()),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	s.cacheDelete(ctx, oldHash)
	s.cacheSet(ctx, refreshHash(newRefresh), user.ID, now.Add(s.cfg.Auth.RefreshTokenTTL))

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    newRefresh,
		AccessExpiresAt: now.Add(s.cfg.Auth.AccessTokenTTL),
	}, nil
}

// Logout завершает сессию пользователя: безусловно сбрасывает сохранённый
// хэш refresh-токена. Идемпотентен.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	const op = "service.auth.Logout"

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateRefreshTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cacheDelete(ctx, user.RefreshTokenHash)

	return nil
}

// CurrentUser возвращает пользователя по ID.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const op = "service.auth.CurrentUser"

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// DeleteUser удаляет аккаунт вместе с медиафайлами профиля.
func (s *Service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "service.auth.DeleteUser"

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.removeMedia(ctx, user.AvatarKey)
	s.removeMedia(ctx, user.CoverImageKey)
	s.cacheDelete(ctx, user.RefreshTokenHash)

	return nil
}

// ChannelProfile возвращает профиль канала глазами наблюдателя.
func (s *Service) ChannelProfile(ctx context.Context, channelID, viewerID uuid.UUID) (*models.ChannelProfile, error) {
	const op = "service.auth.ChannelProfile"

	profile, err := s.storage.ChannelProfile(ctx, channelID, viewerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return profile, nil
}

// issueTokenPair выпускает новую пару access+refresh токенов и перезаписывает
// хэш refresh-токена на документе пользователя.
func (s *Service) issueTokenPair(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	const op = "service.auth.issueTokenPair"

	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(ctx, user, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.generateRefreshToken(ctx, user, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	newHash := refreshHash(refreshToken)
	if err := s.storage.UpdateRefreshTokenHash(ctx, user.ID, newHash); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheDelete(ctx, user.RefreshTokenHash)
	s.cacheSet(ctx, newHash, user.ID, now.Add(s.cfg.Auth.RefreshTokenTTL))

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.Auth.AccessTokenTTL),
	}, nil
}

// cacheSet/cacheDelete — nil-безопасные обёртки над опциональным кэшем.
// Ошибки кэша не фатальны: источником истины остаётся БД.
func (s *Service) cacheSet(ctx context.Context, hash string, userID uuid.UUID, expiresAt time.Time) {
	if s.rcache == nil || hash == "" {
		return
	}

	entry := &cache.SessionEntry{UserID: userID, ExpiresAt: expiresAt}
	if err := s.rcache.Set(ctx, hash, entry, time.Until(expiresAt)); err != nil {
		log.From(ctx).Warn("refresh_cache_set_failed", slog.String("err", err.Error()))
	}
}

func (s *Service) cacheDelete(ctx context.Context, hash string) {
	if s.rcache == nil || hash == "" {
		return
	}

	if err := s.rcache.Delete(ctx, hash); err != nil {
		log.From(ctx).Warn("refresh_cache_delete_failed", slog.String("err", err.Error()))
	}
}

// uploadMedia/removeMedia — тонкие обёртки над медиахранилищем
// с маппингом его ошибок на сервисные.
func (s *Service) uploadMedia(ctx context.Context, kind storage.MediaKind, ownerID uuid.UUID, f *FileUpload) (*storage.UploadResult, error) {
	res, err := s.media.Upload(ctx, storage.UploadParams{
		Kind:        kind,
		OwnerID:     ownerID,
		ContentType: f.ContentType,
		Size:        f.Size,
		Reader:      f.Reader,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidMedia) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidMedia, kind)
		}

		return nil, err
	}

	return res, nil
}

func (s *Service) removeMedia(ctx context.Context, key string) {
	if key == "" {
		return
	}

	if err := s.media.Remove(ctx, key); err != nil {
		log.From(ctx).Warn("media_remove_failed",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика по умолчанию: длина >= 8, хотя бы одна строчная, заглавная, цифра и спецсимвол.
func validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < 8 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
