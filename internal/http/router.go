// Package http собирает HTTP-роутер сервиса: middleware-цепочку,
// REST-маршруты под /api/v1 и auth-гейт для защищённых групп.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-video-hosting/internal/config"
	"github.com/pribylovaa/go-video-hosting/internal/http/handlers"
	"github.com/pribylovaa/go-video-hosting/internal/http/middleware"
	"github.com/pribylovaa/go-video-hosting/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api/v1"; если пустой — роуты регистрируются на корне.
	Metrics  *middleware.HTTPMetrics
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, cfg *config.Config, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),               // безопасно ловим паники
		middleware.RequestID(),             // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger),    // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),   // количество/длительность запросов
		middleware.Authenticate(svc),       // опознаём пользователя по куке/Bearer
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc, cfg)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	authed := middleware.RequireAuth()

	// users
	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/refresh-token", h.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/logout", h.Logout)
			r.Post("/getuser", h.GetUser)
			r.Get("/c/{channelId}", h.ChannelProfile)
			r.Post("/delete-user", h.DeleteUser)
		})
	})

	// videos
	r.Route("/videos", func(r chi.Router) {
		r.Get("/", h.ListVideos)
		r.Get("/{videoId}", h.VideoByID)

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/", h.CreateVideo)
			r.Patch("/{videoId}", h.UpdateVideo)
			r.Delete("/{videoId}", h.DeleteVideo)
			r.Patch("/toggle/publish/{videoId}", h.TogglePublish)
		})
	})

	// comments
	r.Route("/comments", func(r chi.Router) {
		r.Use(authed)
		r.Get("/{videoId}", h.ListComments)
		r.Post("/{videoId}", h.CreateComment)
		r.Patch("/c/{commentId}", h.UpdateComment)
		r.Delete("/c/{commentId}", h.DeleteComment)
	})

	// likes
	r.Route("/likes", func(r chi.Router) {
		r.Use(authed)
		r.Post("/toggle/v/{videoId}", h.ToggleVideoLike)
		r.Post("/toggle/c/{commentId}", h.ToggleCommentLike)
		r.Post("/toggle/t/{tweetId}", h.ToggleTweetLike)
		r.Get("/videos", h.LikedVideos)
	})

	// subscriptions
	r.Route("/subscriptions", func(r chi.Router) {
		r.Use(authed)
		r.Post("/c/{channelId}", h.ToggleSubscription)
		r.Get("/c/{channelId}", h.Subscribers)
		r.Get("/u/{subscriberId}", h.SubscribedChannels)
	})

	// playlists
	r.Route("/playlists", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", h.CreatePlaylist)
		r.Get("/user/{userId}", h.PlaylistsByUser)
		r.Get("/{playlistId}", h.PlaylistByID)
		r.Patch("/{playlistId}", h.UpdatePlaylist)
		r.Delete("/{playlistId}", h.DeletePlaylist)
		r.Patch("/add/{videoId}/{playlistId}", h.AddVideoToPlaylist)
		r.Patch("/remove/{videoId}/{playlistId}", h.RemoveVideoFromPlaylist)
	})

	// tweets
	r.Route("/tweets", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", h.CreateTweet)
		r.Get("/user/{userId}", h.TweetsByUser)
		r.Patch("/{tweetId}", h.UpdateTweet)
		r.Delete("/{tweetId}", h.DeleteTweet)
	})
}
