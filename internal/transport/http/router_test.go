package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/config"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/pribylovaa/go-video-platform/mocks"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Сквозные тесты HTTP-слоя: роутер + middleware + хендлеры поверх
// сервиса с мокнутыми хранилищами. Проверяются доставка токенов через
// cookie, защита маршрутов и формат ошибок.

type routerMocks struct {
	users         *mocks.MockUserStorage
	videos        *mocks.MockVideoStorage
	comments      *mocks.MockCommentStorage
	subscriptions *mocks.MockSubscriptionStorage
	assets        *mocks.MockAssetStorage
}

func newTestRouter(t *testing.T) (http.Handler, *routerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &routerMocks{
		users:         mocks.NewMockUserStorage(ctrl),
		videos:        mocks.NewMockVideoStorage(ctrl),
		comments:      mocks.NewMockCommentStorage(ctrl),
		subscriptions: mocks.NewMockSubscriptionStorage(ctrl),
		assets:        mocks.NewMockAssetStorage(ctrl),
	}

	cfg := &config.Config{
		Env: "local",
		HTTP: config.HTTPConfig{
			Host:         "127.0.0.1",
			Port:         "0",
			CookieSecure: false,
		},
		Auth: config.AuthConfig{
			AccessSecret:    "router-access-secret",
			RefreshSecret:   "router-refresh-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			Issuer:          "video-platform",
		},
		Timeouts: config.TimeoutConfig{Service: 5 * time.Second, Cleanup: time.Second},
	}

	svc := service.New(cfg, m.users, m.videos, m.comments, m.subscriptions, m.assets)

	router := NewRouter(svc, cfg, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return router, m
}

// mintToken подписывает токен теми же claims и секретами, что и сервис.
func mintToken(t *testing.T, kind, secret string, uid uuid.UUID) string {
	t.Helper()

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"kind": kind,
		"sub":  uid.String(),
		"iss":  "video-platform",
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(time.Minute)),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()

	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}

	t.Fatalf("cookie %q not found", name)
	return nil
}

func TestRouter_Livez(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestRouter_Healthz_Unhealthy(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			AccessSecret:  "s1",
			RefreshSecret: "s2",
			Issuer:        "video-platform",
		},
	}
	svc := service.New(cfg,
		mocks.NewMockUserStorage(ctrl),
		mocks.NewMockVideoStorage(ctrl),
		mocks.NewMockCommentStorage(ctrl),
		mocks.NewMockSubscriptionStorage(ctrl),
		mocks.NewMockAssetStorage(ctrl),
	)

	router := NewRouter(svc, cfg, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Health: func(context.Context) error { return errors.New("db down") },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// Логин отдаёт пару токенов и в теле, и в HTTP-only cookie.
func TestRouter_Login_SetsAuthCookies(t *testing.T) {
	t.Parallel()

	router, m := newTestRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ngPass"), bcrypt.MinCost)
	require.NoError(t, err)

	uid := uuid.New()
	m.users.EXPECT().
		UserByLogin(gomock.Any(), "alice").
		Return(&models.User{ID: uid, Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)}, nil)
	m.users.EXPECT().
		SetRefreshToken(gomock.Any(), uid, gomock.Any()).
		Return(nil)

	body, _ := json.Marshal(map[string]string{"login": "alice", "password": "Str0ngPass"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	access := cookieByName(t, cookies, "access_token")
	refresh := cookieByName(t, cookies, "refresh_token")
	require.True(t, access.HttpOnly)
	require.True(t, refresh.HttpOnly)
	require.NotEmpty(t, access.Value)
	require.NotEmpty(t, refresh.Value)
	require.Equal(t, 60, access.MaxAge)
	require.Equal(t, 3600, refresh.MaxAge)

	var resp struct {
		User struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
		Tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "alice", resp.User.Username)
	// Собственный аккаунт видит свой email.
	require.Equal(t, "alice@example.com", resp.User.Email)
	require.Equal(t, access.Value, resp.Tokens.AccessToken)
	require.Equal(t, refresh.Value, resp.Tokens.RefreshToken)
}

func TestRouter_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	router, m := newTestRouter(t)

	m.users.EXPECT().
		UserByLogin(gomock.Any(), "ghost").
		Return(nil, errors.New("scan: no rows"))

	body, _ := json.Marshal(map[string]string{"login": "ghost", "password": "whatever"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

	// Любая внутренняя деталь наружу не уходит: только стандартный конверт.
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal", resp.Error.Code)
}

// Защищённый маршрут принимает access-токен из cookie.
func TestRouter_ProtectedRoute_WithCookie(t *testing.T) {
	t.Parallel()

	router, m := newTestRouter(t)

	uid := uuid.New()
	access := mintToken(t, "access", "router-access-secret", uid)

	m.users.EXPECT().
		UserByID(gomock.Any(), uid).
		Return(&models.User{ID: uid, Username: "alice", Email: "alice@example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: access})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ProtectedRoute_NoToken(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Refresh принимает токен из cookie без тела запроса.
func TestRouter_Refresh_FromCookie(t *testing.T) {
	t.Parallel()

	router, m := newTestRouter(t)

	uid := uuid.New()
	refresh := mintToken(t, "refresh", "router-refresh-secret", uid)

	m.users.EXPECT().
		RotateRefreshToken(gomock.Any(), uid, gomock.Any(), gomock.Any()).
		Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refresh})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Новая пара заменяет cookie.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookieByName(t, cookies, "access_token").Value)
	newRefresh := cookieByName(t, cookies, "refresh_token").Value
	require.NotEmpty(t, newRefresh)
	require.NotEqual(t, refresh, newRefresh)
}

// Повторно предъявленный (вытесненный) refresh-токен получает 401.
func TestRouter_Refresh_Stale(t *testing.T) {
	t.Parallel()

	router, m := newTestRouter(t)

	uid := uuid.New()
	refresh := mintToken(t, "refresh", "router-refresh-secret", uid)

	m.users.EXPECT().
		RotateRefreshToken(gomock.Any(), uid, gomock.Any(), gomock.Any()).
		Return(false, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refresh})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Битое тело запроса без cookie — это 400 (ошибка формата),
// а не 401 за отсутствующий токен.
func TestRouter_Refresh_MalformedBody(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "invalid_argument", resp.Error.Code)
}

// Без cookie и без тела — missing_token, пустое тело не считается битым.
func TestRouter_Refresh_NoTokenAtAll(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/refresh", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Logout стирает auth-cookie.
func TestRouter_Logout_ClearsCookies(t *testing.T) {
	t.Parallel()

	router, m := newTestRouter(t)

	uid := uuid.New()
	access := mintToken(t, "access", "router-access-secret", uid)

	m.users.EXPECT().ClearRefreshToken(gomock.Any(), uid).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: access})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Empty(t, cookieByName(t, cookies, "access_token").Value)
	require.Empty(t, cookieByName(t, cookies, "refresh_token").Value)
	require.Negative(t, cookieByName(t, cookies, "refresh_token").MaxAge)
}

// Публичная выдача видео не требует токена.
func TestRouter_PublicVideos(t *testing.T) {
	t.Parallel()

	router, m := newTestRouter(t)

	m.videos.EXPECT().
		ListVideos(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.VideoPage{Items: []models.Video{{ID: "65f000000000000000000001", Title: "public"}}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)
	require.Equal(t, "public", resp.Items[0].Title)
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
