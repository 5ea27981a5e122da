package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/httperr"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/middleware"
)

// Subscribe — POST /channels/{id}/subscribe (auth).
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	sub, err := h.svc.Subscribe(r.Context(), userID, channelID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, subscriptionToResponse(sub))
}

// Unsubscribe — DELETE /channels/{id}/subscribe (auth).
func (h *Handlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.svc.Unsubscribe(r.Context(), userID, channelID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MySubscriptions — GET /users/me/subscriptions (auth).
func (h *Handlers) MySubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	items, err := h.svc.Subscriptions(r.Context(), userID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := make([]subscriptionResponse, 0, len(items))
	for i := range items {
		out = append(out, subscriptionToResponse(&items[i]))
	}

	writeJSON(w, http.StatusOK, out)
}
