package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-video-hosting/internal/http/apierrors"
)

// ToggleSubscription оформляет или отменяет подписку на канал.
func (h *Handlers) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuidParam(r, "channelId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	subscribed, err := h.svc.ToggleSubscription(r.Context(), actorID(r), channelID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{Active: subscribed})
}

// Subscribers возвращает подписчиков канала.
func (h *Handlers) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuidParam(r, "channelId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	items, err := h.svc.Subscribers(r.Context(), channelID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// SubscribedChannels возвращает каналы, на которые подписан пользователь.
func (h *Handlers) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := uuidParam(r, "subscriberId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	items, err := h.svc.SubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
