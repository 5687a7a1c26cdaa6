package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-video-hosting/internal/http/apierrors"
)

type tweetRequest struct {
	Content string `json:"content"`
}

// CreateTweet публикует твит текущего пользователя.
func (h *Handlers) CreateTweet(w http.ResponseWriter, r *http.Request) {
	var in tweetRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	tweet, err := h.svc.CreateTweet(r.Context(), actorID(r), in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tweet)
}

// TweetsByUser возвращает твиты пользователя с карточкой автора.
func (h *Handlers) TweetsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	items, err := h.svc.TweetsByUser(r.Context(), userID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// UpdateTweet изменяет текст твита (только автор).
func (h *Handlers) UpdateTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := uuidParam(r, "tweetId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	var in tweetRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	tweet, err := h.svc.UpdateTweet(r.Context(), actorID(r), tweetID, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tweet)
}

// DeleteTweet удаляет твит (только автор).
func (h *Handlers) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := uuidParam(r, "tweetId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.svc.DeleteTweet(r.Context(), actorID(r), tweetID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
