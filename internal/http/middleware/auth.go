package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/http/apierrors"
	"github.com/pribylovaa/go-video-hosting/internal/models"
)

// Authenticator — минимальный контракт сервиса для проверки access-токена.
type Authenticator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Authenticate извлекает access-токен (cookie accessToken, затем
// Authorization: Bearer), валидирует его и кладёт ID пользователя в контекст.
// Невалидный или отсутствующий токен НЕ прерывает запрос: публичные
// эндпойнты работают анонимно, а защищённые закрывает RequireAuth.
//
// Пользователь перечитывается из хранилища: токен удалённого аккаунта
// недействителен, даже если подпись ещё валидна.
func Authenticate(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			uid, _, err := a.ValidateAccessToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := a.CurrentUser(r.Context(), uid); err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth отклоняет запросы без аутентифицированного пользователя
// в контексте (401/unauthenticated).
func RequireAuth() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserIDFrom(r.Context()); !ok {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFrom возвращает ID аутентифицированного пользователя из контекста.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	uid, ok := ctx.Value(CtxUserID).(uuid.UUID)
	return uid, ok
}

// tokenFromRequest достаёт access-токен: сначала cookie, потом Bearer.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie("accessToken"); err == nil && c.Value != "" {
		return c.Value
	}

	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}
