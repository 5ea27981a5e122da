// http собирает роутер видеоплатформы: публичные и защищённые маршруты,
// middleware-цепочку и служебные эндпойнты (/livez, /healthz, /metrics).
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-video-platform/internal/config"
	"github.com/pribylovaa/go-video-platform/internal/service"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/handlers"
	"github.com/pribylovaa/go-video-platform/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// Health опрашивает зависимости (postgres/mongo) для /healthz;
	// nil — /healthz эквивалентен /livez.
	Health func(ctx context.Context) error
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, cfg *config.Config, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчики/гистограммы по шаблону маршрута
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc, cfg)

	// Служебные эндпойнты.
	root.Get("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Health != nil {
			if err := opts.Health(r.Context()); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.Handle("/metrics", promhttp.Handler())

	// Публичные маршруты.
	root.Group(func(r chi.Router) {
		r.Post("/auth/register", h.RegisterUser)
		r.Post("/auth/login", h.LoginUser)
		r.Post("/auth/refresh", h.RefreshTokens)

		r.Get("/videos", h.ListVideos)
		r.Get("/videos/{id}", h.GetVideo)
		r.Get("/videos/{id}/comments", h.ListComments)

		r.Get("/users/{id}", h.GetUser)
	})

	// Защищённые маршруты.
	root.Group(func(r chi.Router) {
		r.Use(middleware.Auth(svc))

		r.Post("/auth/logout", h.Logout)

		r.Get("/users/me", h.Me)
		r.Patch("/users/me/avatar", h.UpdateAvatar)
		r.Patch("/users/me/cover", h.UpdateCoverImage)
		r.Get("/users/me/videos", h.MyVideos)
		r.Get("/users/me/subscriptions", h.MySubscriptions)

		r.Post("/videos", h.PublishVideo)
		r.Patch("/videos/{id}", h.UpdateVideo)
		r.Post("/videos/{id}/toggle-publish", h.TogglePublish)
		r.Delete("/videos/{id}", h.DeleteVideo)

		r.Post("/videos/{id}/comments", h.CreateComment)
		r.Patch("/comments/{id}", h.UpdateComment)
		r.Delete("/comments/{id}", h.DeleteComment)

		r.Post("/channels/{id}/subscribe", h.Subscribe)
		r.Delete("/channels/{id}/subscribe", h.Unsubscribe)
	})

	return root
}
