package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/httperr"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/middleware"
)

type commentRequest struct {
	Content string `json:"content"`
}

// CreateComment — POST /videos/{id}/comments (auth).
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	var in commentRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	comment, err := h.svc.CreateComment(r.Context(), userID, chi.URLParam(r, "id"), in.Content)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentToResponse(comment))
}

// ListComments — GET /videos/{id}/comments.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.CommentsByVideo(r.Context(), chi.URLParam(r, "id"), listParamsFrom(r))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentPageToResponse(page))
}

// UpdateComment — PATCH /comments/{id} (auth, только владелец).
func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	var in commentRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), userID, chi.URLParam(r, "id"), in.Content)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentToResponse(comment))
}

// DeleteComment — DELETE /comments/{id} (auth, только владелец).
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
