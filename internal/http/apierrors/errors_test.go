package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/go-video-hosting/internal/service"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_argument", service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"invalid_email", service.ErrInvalidEmail, http.StatusBadRequest, "invalid_argument"},
		{"weak_password", service.ErrWeakPassword, http.StatusBadRequest, "invalid_argument"},
		{"empty_password", service.ErrEmptyPassword, http.StatusBadRequest, "invalid_argument"},
		{"invalid_media", service.ErrInvalidMedia, http.StatusBadRequest, "invalid_argument"},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "unauthenticated"},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"token_expired", service.ErrTokenExpired, http.StatusUnauthorized, "unauthenticated"},
		{"token_revoked", service.ErrTokenRevoked, http.StatusUnauthorized, "unauthenticated"},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"perm_denied", service.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
		{"not_found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"user_exists", service.ErrUserExists, http.StatusConflict, "already_exists"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_WrappedError_Mapped(t *testing.T) {
	// Сервисные ошибки приходят обёрнутыми через %w.
	err := fmt.Errorf("service.videos.DeleteVideo: %w", service.ErrPermissionDenied)

	gotStatus, resp := ToHTTP(err)
	require.Equal(t, http.StatusForbidden, gotStatus)
	require.Equal(t, "permission_denied", resp.Error.Code)
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestWriteError_PropagatesRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-123")

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.Contains(t, rr.Body.String(), `"request_id":"rid-123"`)
	require.Contains(t, rr.Body.String(), `"not_found"`)
}
