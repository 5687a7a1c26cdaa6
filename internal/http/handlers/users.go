package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-video-hosting/internal/http/apierrors"
	"github.com/pribylovaa/go-video-hosting/internal/service"
)

// Signup регистрирует пользователя из multipart-формы:
// username, email, fullName, password + файлы avatar (обязателен)
// и coverImage (опционален). Токены не выпускаются — клиент логинится отдельно.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	avatar, avatarFile, err := fileFromForm(r, "avatar")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}
	if avatarFile != nil {
		defer avatarFile.Close()
	}

	cover, coverFile, err := fileFromForm(r, "coverImage")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}
	if coverFile != nil {
		defer coverFile.Close()
	}

	user, err := h.svc.RegisterUser(r.Context(), service.RegisterUserParams{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
		Avatar:   avatar,
		Cover:    cover,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login выполняет вход по username или e-mail.
// Пара токенов уходит клиенту в куках, тело ответа — профиль пользователя.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	user, pair, err := h.svc.LoginUser(r.Context(), in.Login, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, user)
}

// Logout завершает сессию и сбрасывает куки.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), actorID(r)); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RefreshToken ротирует пару токенов. Refresh-токен берётся из куки
// refreshToken, при её отсутствии — из Authorization: Bearer
// (для клиентов без куки, например мобильных).
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	if token == "" {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	pair, err := h.svc.RefreshTokens(r.Context(), token)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetUser возвращает профиль текущего пользователя.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.CurrentUser(r.Context(), actorID(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ChannelProfile возвращает профиль канала со счётчиками подписок.
func (h *Handlers) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuidParam(r, "channelId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	profile, err := h.svc.ChannelProfile(r.Context(), channelID, actorID(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// DeleteUser удаляет аккаунт текущего пользователя вместе с медиа
// и сбрасывает куки.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUser(r.Context(), actorID(r)); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
