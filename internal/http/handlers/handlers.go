package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/config"
	"github.com/pribylovaa/go-video-hosting/internal/http/middleware"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	svc *service.Service
	cfg *config.Config
}

func New(svc *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{svc: svc, cfg: cfg}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — вспомогалка: локальная ошибка парсинга -> 400.
func errInvalidArgument() error {
	return service.ErrInvalidArgument
}

// actorID возвращает ID аутентифицированного пользователя.
// За защищёнными маршрутами стоит RequireAuth, поэтому uuid.Nil здесь
// возможен только на публичных эндпойнтах (анонимный наблюдатель).
func actorID(r *http.Request) uuid.UUID {
	uid, _ := middleware.UserIDFrom(r.Context())
	return uid
}

// uuidParam парсит UUID из URL-параметра chi.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// fileFromForm достаёт файл multipart-формы и упаковывает в FileUpload.
// Отсутствующее поле — не ошибка: возвращается (nil, nil, nil), опциональность
// решает вызывающий.
func fileFromForm(r *http.Request, field string) (*service.FileUpload, multipart.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}

		return nil, nil, err
	}

	return &service.FileUpload{
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, file, nil
}

// refreshTokenFromRequest достаёт refresh-токен: сначала кука
// refreshToken, потом Authorization: Bearer.
func refreshTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie("refreshToken"); err == nil && c.Value != "" {
		return c.Value
	}

	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}

// setAuthCookies выставляет accessToken/refreshToken.
// HttpOnly+Secure+SameSite=Lax: токены недоступны из JS и не уходят
// в cross-site запросах.
func (h *Handlers) setAuthCookies(w http.ResponseWriter, pair *models.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    pair.AccessToken,
		Path:     "/",
		Expires:  pair.AccessExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    pair.RefreshToken,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.Auth.RefreshTokenTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookies сбрасывает обе куки (логаут/удаление аккаунта).
func (h *Handlers) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
