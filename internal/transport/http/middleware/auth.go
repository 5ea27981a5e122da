package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/httperr"
)

// AccessTokenCookie — имя cookie с access-токеном (его же ставят auth-хендлеры).
const AccessTokenCookie = "access_token"

// AccessVerifier проверяет access-токен и возвращает владельца.
type AccessVerifier interface {
	VerifyAccess(ctx context.Context, raw string) (uuid.UUID, error)
}

type ctxUserIDKey struct{}

// Auth извлекает access-токен из cookie либо Authorization: Bearer,
// проверяет его и кладёт userID в контекст. Любой сбой — 401,
// хранилище при этом не опрашивается.
func Auth(verifier AccessVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := verifier.VerifyAccess(r.Context(), accessTokenFrom(r))
			if err != nil {
				httperr.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom достаёт аутентифицированного пользователя из контекста.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxUserIDKey{}).(uuid.UUID)

	return id, ok
}

// accessTokenFrom — cookie приоритетнее заголовка: браузерный клиент
// работает через cookie, Bearer оставлен для API-клиентов.
func accessTokenFrom(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}
