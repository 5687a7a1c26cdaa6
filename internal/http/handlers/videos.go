package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/http/apierrors"
	"github.com/pribylovaa/go-video-hosting/internal/service"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
)

// ListVideos возвращает страницу видео.
// Параметры: query, userId, sortBy (created_at|views|title), order (asc|desc),
// page, limit.
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := storage.ListVideosParams{
		Query:   q.Get("query"),
		SortBy:  q.Get("sortBy"),
		SortAsc: q.Get("order") == "asc",
		Page:    parseInt64(q.Get("page")),
		Limit:   parseInt64(q.Get("limit")),
	}

	if raw := q.Get("userId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}
		params.OwnerID = ownerID
	}

	page, err := h.svc.ListVideos(r.Context(), actorID(r), params)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// CreateVideo публикует видеоролик из multipart-формы:
// title, description, duration + файлы videoFile (обязателен)
// и thumbnail (опционален).
func (h *Handlers) CreateVideo(w http.ResponseWriter, r *http.Request) {
	videoFile, vf, err := fileFromForm(r, "videoFile")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}
	if vf != nil {
		defer vf.Close()
	}

	thumbnail, tf, err := fileFromForm(r, "thumbnail")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}
	if tf != nil {
		defer tf.Close()
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	video, err := h.svc.CreateVideo(r.Context(), actorID(r), service.CreateVideoParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    duration,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, video)
}

// VideoByID возвращает видеоролик; просмотр постороннего засчитывается.
func (h *Handlers) VideoByID(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	video, err := h.svc.VideoByID(r.Context(), actorID(r), videoID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, video)
}

// UpdateVideo обновляет метаданные ролика (multipart: title, description,
// thumbnail). Поля, отсутствующие в форме, не меняются.
func (h *Handlers) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	thumbnail, tf, err := fileFromForm(r, "thumbnail")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}
	if tf != nil {
		defer tf.Close()
	}

	params := service.UpdateVideoParams{Thumbnail: thumbnail}
	if r.Form.Has("title") {
		title := r.FormValue("title")
		params.Title = &title
	}
	if r.Form.Has("description") {
		description := r.FormValue("description")
		params.Description = &description
	}

	video, err := h.svc.UpdateVideo(r.Context(), actorID(r), videoID, params)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, video)
}

// TogglePublish переключает статус публикации ролика.
func (h *Handlers) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	video, err := h.svc.TogglePublishStatus(r.Context(), actorID(r), videoID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, video)
}

// DeleteVideo удаляет ролик вместе с медиафайлами.
func (h *Handlers) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), actorID(r), videoID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseInt64 парсит положительное число; мусор и пустая строка дают 0,
// дефолты подставляет слой хранения.
func parseInt64(raw string) int64 {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
