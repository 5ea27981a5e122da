// handlers содержит HTTP-хендлеры видеоплатформы поверх сервисного слоя.
// Токены доставляются двумя каналами одновременно: HTTP-only cookie для
// браузерного клиента и зеркало в JSON-теле для остальных.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pribylovaa/go-video-platform/internal/config"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/middleware"
)

// RefreshTokenCookie — имя cookie с refresh-токеном.
const RefreshTokenCookie = "refresh_token"

// maxMultipartMemory — буфер разбора multipart в памяти; крупные файлы
// уходят во временные файлы.
const maxMultipartMemory = 32 << 20

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	svc *service.Service
	cfg *config.Config
}

func New(svc *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{svc: svc, cfg: cfg}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// setAuthCookies кладёт пару токенов в HTTP-only cookie.
// MaxAge привязан к TTL соответствующего токена.
func (h *Handlers) setAuthCookies(w http.ResponseWriter, pair *models.TokenPair) {
	http.SetCookie(w, h.authCookie(middleware.AccessTokenCookie, pair.AccessToken, h.cfg.Auth.AccessTokenTTL))
	http.SetCookie(w, h.authCookie(RefreshTokenCookie, pair.RefreshToken, h.cfg.Auth.RefreshTokenTTL))
}

// clearAuthCookies стирает auth-cookie (logout).
func (h *Handlers) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.authCookie(middleware.AccessTokenCookie, "", -time.Second))
	http.SetCookie(w, h.authCookie(RefreshTokenCookie, "", -time.Second))
}

func (h *Handlers) authCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.HTTP.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// fileFromForm достаёт файл multipart-формы.
// (nil, nil) — поля в форме нет; закрытие файла — за вызывающим.
func fileFromForm(r *http.Request, field string) (*service.FileUpload, func(), error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}

		return nil, func() {}, err
	}

	return &service.FileUpload{
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        f,
	}, func() { _ = f.Close() }, nil
}

// formValue возвращает указатель на значение поля формы
// (nil, если поле не передавалось — частичные апдейты).
func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}

	if vals, ok := r.MultipartForm.Value[field]; ok && len(vals) > 0 {
		return &vals[0]
	}

	return nil
}

// DTO наружу. Email отдаётся только в ответах о собственном аккаунте.

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

type videoResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type videoPageResponse struct {
	Items         []videoResponse `json:"items"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type commentPageResponse struct {
	Items         []commentResponse `json:"items"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

type subscriptionResponse struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber_id"`
	ChannelID    string    `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func userToResponse(u *models.User, withEmail bool) userResponse {
	out := userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
		CreatedAt: u.CreatedAt,
	}

	if withEmail {
		out.Email = u.Email
	}

	return out
}

func tokensToResponse(p *models.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:     p.AccessToken,
		RefreshToken:    p.RefreshToken,
		AccessExpiresAt: p.AccessExpiresAt,
	}
}

func videoToResponse(v *models.Video) videoResponse {
	return videoResponse{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoFile.URL,
		ThumbnailURL: v.Thumbnail.URL,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func videoPageToResponse(p *models.VideoPage) videoPageResponse {
	out := videoPageResponse{
		Items:         make([]videoResponse, 0, len(p.Items)),
		NextPageToken: p.NextPageToken,
	}

	for i := range p.Items {
		out.Items = append(out.Items, videoToResponse(&p.Items[i]))
	}

	return out
}

func commentToResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func commentPageToResponse(p *models.CommentPage) commentPageResponse {
	out := commentPageResponse{
		Items:         make([]commentResponse, 0, len(p.Items)),
		NextPageToken: p.NextPageToken,
	}

	for i := range p.Items {
		out.Items = append(out.Items, commentToResponse(&p.Items[i]))
	}

	return out
}

func subscriptionToResponse(s *models.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:           s.ID,
		SubscriberID: s.SubscriberID,
		ChannelID:    s.ChannelID,
		CreatedAt:    s.CreatedAt,
	}
}
