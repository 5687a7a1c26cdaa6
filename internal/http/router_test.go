package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/config"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/service"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
	"github.com/pribylovaa/go-video-hosting/mocks"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func routerCfg() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			AccessSecret:    "router-access-secret",
			RefreshSecret:   "router-refresh-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
			Issuer:          "video-hosting",
			Audience:        []string{"video-hosting-api"},
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockStorage, *mocks.MockMediaStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	st := mocks.NewMockStorage(ctrl)
	media := mocks.NewMockMediaStore(ctrl)

	cfg := routerCfg()
	svc := service.New(st, media, cfg)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(svc, cfg, Options{
		Logger:   logger,
		BasePath: "/api/v1",
	})

	return router, st, media
}

// signupBody собирает multipart-форму регистрации с одним avatar-файлом.
func signupBody(t *testing.T, username, email, fullName, password string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	require.NoError(t, mw.WriteField("username", username))
	require.NoError(t, mw.WriteField("email", email))
	require.NoError(t, mw.WriteField("fullName", fullName))
	require.NoError(t, mw.WriteField("password", password))

	fw, err := mw.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignupLoginGetUser_Flow(t *testing.T) {
	router, st, media := newTestRouter(t)

	var saved models.User

	media.EXPECT().Upload(gomock.Any(), gomock.Any()).
		Return(&storage.UploadResult{Key: "avatars/a.png", URL: "http://cdn/avatars/a.png"}, nil)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			saved = *u
			return nil
		})

	// 1. Регистрация.
	body, contentType := signupBody(t, "Creator", "User@Example.com", "Test Creator", "Abcdef1!")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signup", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "creator", saved.Username)
	require.Equal(t, "user@example.com", saved.Email)
	// Хэш пароля не должен утекать наружу.
	require.NotContains(t, rr.Body.String(), saved.PasswordHash)

	// 2. Вход.
	st.EXPECT().UserByUsername(gomock.Any(), "creator").Return(&saved, nil)
	st.EXPECT().UpdateRefreshTokenHash(gomock.Any(), saved.ID, gomock.Any()).Return(nil)

	loginBody, err := json.Marshal(map[string]string{"login": "creator", "password": "Abcdef1!"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotContains(t, rr.Body.String(), saved.PasswordHash)

	resp := rr.Result()
	access := cookieByName(resp, "accessToken")
	refresh := cookieByName(resp, "refreshToken")
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	require.True(t, access.HttpOnly)
	require.True(t, access.Secure)
	require.Equal(t, http.SameSiteLaxMode, access.SameSite)
	require.NotEmpty(t, access.Value)
	require.NotEmpty(t, refresh.Value)

	// 3. Текущий пользователь по access-куке.
	st.EXPECT().UserByID(gomock.Any(), saved.ID).Return(&saved, nil).AnyTimes()

	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/getuser", nil)
	req.AddCookie(access)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, saved.ID, got.ID)
	require.Equal(t, "creator", got.Username)
}

func TestGetUser_WithoutToken_Unauthorized(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/getuser", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "unauthenticated")
}

func TestRefresh_Rotation_OldRefreshRejected(t *testing.T) {
	router, st, _ := newTestRouter(t)

	pwBytes, err := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		Username:     "creator",
		Email:        "user@example.com",
		PasswordHash: string(pwBytes),
	}

	// Вход даёт первую пару токенов.
	st.EXPECT().UserByUsername(gomock.Any(), "creator").Return(&user, nil)
	st.EXPECT().UpdateRefreshTokenHash(gomock.Any(), user.ID, gomock.Any()).Return(nil)

	loginBody, err := json.Marshal(map[string]string{"login": "creator", "password": "Abcdef1!"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	oldRefresh := cookieByName(rr.Result(), "refreshToken")
	require.NotNil(t, oldRefresh)

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(&user, nil).AnyTimes()

	// Первая ротация успешна, повтор с тем же токеном отклоняется хранилищем.
	gomock.InOrder(
		st.EXPECT().RotateRefreshTokenHash(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).
			Return(nil),
		st.EXPECT().RotateRefreshTokenHash(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).
			Return(storage.ErrTokenMismatch),
	)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(oldRefresh)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	newRefresh := cookieByName(rr.Result(), "refreshToken")
	require.NotNil(t, newRefresh)
	require.NotEqual(t, oldRefresh.Value, newRefresh.Value)

	// Старый refresh после ротации одноразово мёртв.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(oldRefresh)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "unauthenticated")
}

func TestRefresh_BearerHeader_WithoutCookie(t *testing.T) {
	router, st, _ := newTestRouter(t)

	pwBytes, err := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		Username:     "creator",
		Email:        "user@example.com",
		PasswordHash: string(pwBytes),
	}

	st.EXPECT().UserByUsername(gomock.Any(), "creator").Return(&user, nil)
	st.EXPECT().UpdateRefreshTokenHash(gomock.Any(), user.ID, gomock.Any()).Return(nil)

	loginBody, err := json.Marshal(map[string]string{"login": "creator", "password": "Abcdef1!"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	refresh := cookieByName(rr.Result(), "refreshToken")
	require.NotNil(t, refresh)

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(&user, nil).AnyTimes()
	st.EXPECT().RotateRefreshTokenHash(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).
		Return(nil)

	// Клиент без кук передаёт refresh-токен заголовком.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.Header.Set("Authorization", "Bearer "+refresh.Value)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	newRefresh := cookieByName(rr.Result(), "refreshToken")
	require.NotNil(t, newRefresh)
	require.NotEqual(t, refresh.Value, newRefresh.Value)
}

func TestUpdateVideo_Foreign_Forbidden(t *testing.T) {
	router, st, _ := newTestRouter(t)

	pwBytes, err := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	actor := models.User{
		ID:           uuid.New(),
		Username:     "viewer",
		Email:        "viewer@example.com",
		PasswordHash: string(pwBytes),
	}

	st.EXPECT().UserByUsername(gomock.Any(), "viewer").Return(&actor, nil)
	st.EXPECT().UpdateRefreshTokenHash(gomock.Any(), actor.ID, gomock.Any()).Return(nil)
	st.EXPECT().UserByID(gomock.Any(), actor.ID).Return(&actor, nil).AnyTimes()

	loginBody, err := json.Marshal(map[string]string{"login": "viewer", "password": "Abcdef1!"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	access := cookieByName(rr.Result(), "accessToken")
	require.NotNil(t, access)

	// Чужое видео.
	video := models.Video{ID: uuid.New(), OwnerID: uuid.New(), Title: "foreign"}
	st.EXPECT().VideoByID(gomock.Any(), video.ID).Return(&video, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "hijacked"))
	require.NoError(t, mw.Close())

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/videos/"+video.ID.String(), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(access)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, rr.Body.String(), "permission_denied")
}

func TestListVideos_Public_NoAuth(t *testing.T) {
	router, st, _ := newTestRouter(t)

	st.EXPECT().ListVideos(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p storage.ListVideosParams) (*models.VideoPage, error) {
			require.True(t, p.OnlyPublished)
			return &models.VideoPage{Items: []models.Video{}, Page: 1, Limit: 10}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?page=1&limit=10", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}
