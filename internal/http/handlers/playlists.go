package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/http/apierrors"
	"github.com/pribylovaa/go-video-hosting/internal/models"
)

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePlaylist создаёт плейлист текущего пользователя.
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var in playlistRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	playlist, err := h.svc.CreatePlaylist(r.Context(), actorID(r), in.Name, in.Description)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, playlist)
}

// PlaylistsByUser возвращает плейлисты пользователя.
func (h *Handlers) PlaylistsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	items, err := h.svc.PlaylistsByUser(r.Context(), userID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// PlaylistByID возвращает плейлист по ID.
func (h *Handlers) PlaylistByID(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	playlist, err := h.svc.PlaylistByID(r.Context(), playlistID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// UpdatePlaylist обновляет название и описание плейлиста (только владелец).
func (h *Handlers) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	var in playlistRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	playlist, err := h.svc.UpdatePlaylist(r.Context(), actorID(r), playlistID, in.Name, in.Description)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// AddVideoToPlaylist добавляет видео в плейлист (только владелец).
func (h *Handlers) AddVideoToPlaylist(w http.ResponseWriter, r *http.Request) {
	h.mutatePlaylistVideos(w, r, h.svc.AddVideoToPlaylist)
}

// RemoveVideoFromPlaylist убирает видео из плейлиста (только владелец).
func (h *Handlers) RemoveVideoFromPlaylist(w http.ResponseWriter, r *http.Request) {
	h.mutatePlaylistVideos(w, r, h.svc.RemoveVideoFromPlaylist)
}

func (h *Handlers) mutatePlaylistVideos(w http.ResponseWriter, r *http.Request,
	mutate func(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*models.Playlist, error)) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	playlist, err := mutate(r.Context(), actorID(r), playlistID, videoID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// DeletePlaylist удаляет плейлист (только владелец).
func (h *Handlers) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.svc.DeletePlaylist(r.Context(), actorID(r), playlistID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
