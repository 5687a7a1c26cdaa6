package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-video-hosting/internal/http/apierrors"
)

type commentRequest struct {
	Content string `json:"content"`
}

// ListComments возвращает страницу комментариев видео (page, limit).
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	q := r.URL.Query()
	page, err := h.svc.ListComments(r.Context(), videoID,
		parseInt64(q.Get("page")), parseInt64(q.Get("limit")))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// CreateComment добавляет комментарий к видео.
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	var in commentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	comment, err := h.svc.CreateComment(r.Context(), actorID(r), videoID, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// UpdateComment изменяет текст комментария (только автор).
func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuidParam(r, "commentId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	var in commentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), actorID(r), commentID, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// DeleteComment удаляет комментарий (только автор).
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuidParam(r, "commentId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.svc.DeleteComment(r.Context(), actorID(r), commentID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
