package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/pribylovaa/go-video-platform/internal/storage"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/httperr"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/middleware"
)

// PublishVideo — POST /videos (auth, multipart).
// Поля: title, description; файлы: video, thumbnail (оба обязательны).
func (h *Handlers) PublishVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	videoFile, closeVideo, err := fileFromForm(r, "video")
	if err != nil || videoFile == nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	defer closeVideo()

	thumbnail, closeThumb, err := fileFromForm(r, "thumbnail")
	if err != nil || thumbnail == nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	defer closeThumb()

	video, err := h.svc.PublishVideo(r.Context(), userID, service.PublishVideoInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		VideoFile:   *videoFile,
		Thumbnail:   *thumbnail,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, videoToResponse(video))
}

// GetVideo — GET /videos/{id}. Просмотр увеличивает счётчик (best-effort).
func (h *Handlers) GetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.svc.VideoByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videoToResponse(video))
}

// ListVideos — GET /videos?owner_id=&page_size=&page_token=.
// Публичная выдача: черновики скрыты всегда.
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListVideos(r.Context(), storage.ListVideosFilter{
		OwnerID:       r.URL.Query().Get("owner_id"),
		PublishedOnly: true,
	}, listParamsFrom(r))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videoPageToResponse(page))
}

// MyVideos — GET /users/me/videos (auth). Видео своего канала, включая черновики.
func (h *Handlers) MyVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	page, err := h.svc.ListVideos(r.Context(), storage.ListVideosFilter{
		OwnerID: userID.String(),
	}, listParamsFrom(r))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videoPageToResponse(page))
}

// UpdateVideo — PATCH /videos/{id} (auth, multipart).
// Поля title/description опциональны; файл "thumbnail" заменяет превью.
func (h *Handlers) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	thumbnail, closeThumb, err := fileFromForm(r, "thumbnail")
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	defer closeThumb()

	video, err := h.svc.UpdateVideo(r.Context(), userID, chi.URLParam(r, "id"), service.UpdateVideoInput{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Thumbnail:   thumbnail,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videoToResponse(video))
}

// TogglePublish — POST /videos/{id}/toggle-publish (auth).
func (h *Handlers) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	video, err := h.svc.TogglePublish(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videoToResponse(video))
}

// DeleteVideo — DELETE /videos/{id} (auth).
func (h *Handlers) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listParamsFrom читает параметры пагинации из query.
// Невалидный page_size игнорируется (дефолт подставит storage).
func listParamsFrom(r *http.Request) models.ListParams {
	p := models.ListParams{
		PageToken: r.URL.Query().Get("page_token"),
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			p.PageSize = int32(v)
		}
	}

	return p
}
