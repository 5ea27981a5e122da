package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/httperr"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/middleware"
)

type authResponse struct {
	User   userResponse  `json:"user"`
	Tokens tokenResponse `json:"tokens"`
}

// RegisterUser — POST /auth/register (multipart).
// Поля: username, email, full_name, password; файлы: avatar (обязателен),
// cover (опционален).
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	avatar, closeAvatar, err := fileFromForm(r, "avatar")
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	defer closeAvatar()

	cover, closeCover, err := fileFromForm(r, "cover")
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	defer closeCover()

	user, pair, err := h.svc.RegisterUser(r.Context(), service.RegisterUserInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("full_name"),
		Password: r.FormValue("password"),
		Avatar:   avatar,
		Cover:    cover,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	h.setAuthCookies(w, pair)
	writeJSON(w, http.StatusCreated, authResponse{
		User:   userToResponse(user, true),
		Tokens: tokensToResponse(pair),
	})
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginUser — POST /auth/login. Login — username или email.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, pair, err := h.svc.LoginUser(r.Context(), in.Login, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	h.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, authResponse{
		User:   userToResponse(user, true),
		Tokens: tokensToResponse(pair),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokens — POST /auth/refresh.
// Токен принимается из cookie либо из поля тела; cookie приоритетнее.
func (h *Handlers) RefreshTokens(w http.ResponseWriter, r *http.Request) {
	presented := ""
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		presented = c.Value
	}

	if presented == "" && r.Body != nil {
		var in refreshRequest
		switch err := decodeStrict(r, &in); {
		case err == nil:
			presented = in.RefreshToken
		case errors.Is(err, io.EOF):
			// Пустое тело не ошибка: токена может не быть вовсе,
			// дальше это даст missing_token.
		default:
			// Тело передано, но не парсится: ошибка формата запроса.
			httperr.WriteError(w, r, service.ErrInvalidArgument)
			return
		}
	}

	pair, _, err := h.svc.RefreshTokens(r.Context(), presented)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	h.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, tokensToResponse(pair))
}

// Logout — POST /auth/logout (auth). Идемпотентен; cookie стираются
// в любом успешном исходе.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	if err := h.svc.Logout(r.Context(), userID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	h.clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}
