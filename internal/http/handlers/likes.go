package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/http/apierrors"
)

type toggleResponse struct {
	Active bool `json:"active"`
}

// ToggleVideoLike переключает лайк видео.
func (h *Handlers) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, "videoId", h.svc.ToggleVideoLike)
}

// ToggleCommentLike переключает лайк комментария.
func (h *Handlers) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, "commentId", h.svc.ToggleCommentLike)
}

// ToggleTweetLike переключает лайк твита.
func (h *Handlers) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, "tweetId", h.svc.ToggleTweetLike)
}

func (h *Handlers) toggleLike(w http.ResponseWriter, r *http.Request, param string,
	toggle func(ctx context.Context, actorID, targetID uuid.UUID) (bool, error)) {
	targetID, err := uuidParam(r, param)
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	liked, err := toggle(r.Context(), actorID(r), targetID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{Active: liked})
}

// LikedVideos возвращает видеоролики, отмеченные текущим пользователем.
func (h *Handlers) LikedVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.svc.LikedVideos(r.Context(), actorID(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videos)
}
