package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/httperr"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/middleware"
)

type channelResponse struct {
	userResponse
	SubscriberCount int64 `json:"subscriber_count"`
}

// GetUser — GET /users/{id}. Публичный профиль канала с числом подписчиков.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.svc.UserByID(r.Context(), id)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	count, err := h.svc.SubscriberCount(r.Context(), id)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, channelResponse{
		userResponse:    userToResponse(user, false),
		SubscriberCount: count,
	})
}

// Me — GET /users/me (auth). Собственный аккаунт, с email.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	user, err := h.svc.UserByID(r.Context(), userID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user, true))
}

// UpdateAvatar — PATCH /users/me/avatar (auth, multipart, файл "avatar").
func (h *Handlers) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.swapProfileAsset(w, r, "avatar", h.svc.UpdateAvatar)
}

// UpdateCoverImage — PATCH /users/me/cover (auth, multipart, файл "cover").
func (h *Handlers) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.swapProfileAsset(w, r, "cover", h.svc.UpdateCoverImage)
}

func (h *Handlers) swapProfileAsset(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	swap func(ctx context.Context, userID uuid.UUID, file service.FileUpload) (*models.User, error),
) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	file, closeFile, err := fileFromForm(r, field)
	if err != nil || file == nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	defer closeFile()

	user, err := swap(r.Context(), userID, *file)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user, true))
}
