package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/stretchr/testify/require"
)

// stubVerifier принимает единственный токен и возвращает фиксированный userID.
type stubVerifier struct {
	token  string
	userID uuid.UUID
}

func (s *stubVerifier) VerifyAccess(_ context.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, service.ErrMissingToken
	}

	if raw != s.token {
		return uuid.Nil, service.ErrInvalidToken
	}

	return s.userID, nil
}

func authHandler(t *testing.T, want uuid.UUID) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := UserIDFrom(r.Context())
		require.True(t, ok)
		require.Equal(t, want, got)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth_FromCookie(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	v := &stubVerifier{token: "good-token", userID: uid}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good-token"})

	rec := httptest.NewRecorder()
	Auth(v)(authHandler(t, uid)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_FromBearer(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	v := &stubVerifier{token: "good-token", userID: uid}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	rec := httptest.NewRecorder()
	Auth(v)(authHandler(t, uid)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

// Cookie приоритетнее заголовка.
func TestAuth_CookieWinsOverBearer(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	v := &stubVerifier{token: "cookie-token", userID: uid}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	rec := httptest.NewRecorder()
	Auth(v)(authHandler(t, uid)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_MissingToken(t *testing.T) {
	t.Parallel()

	v := &stubVerifier{token: "good-token", userID: uuid.New()}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not be called")
	})
	Auth(v)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_BadToken(t *testing.T) {
	t.Parallel()

	v := &stubVerifier{token: "good-token", userID: uuid.New()}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "tampered"})

	rec := httptest.NewRecorder()
	Auth(v)(http.NotFoundHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserIDFrom_Empty(t *testing.T) {
	t.Parallel()

	_, ok := UserIDFrom(context.Background())
	require.False(t, ok)
}
