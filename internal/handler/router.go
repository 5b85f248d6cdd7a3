/*
Package handler provides the HTTP handlers and routing setup for the Agora forum server.

This file defines the main Router, applying middleware for logging, CORS, identity
extraction and per-caller rate limiting before delegating to the forum handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"agora/internal/pkg/auth/jwt"
	"agora/internal/pkg/errs"
	"agora/internal/pkg/limiter"
	"agora/internal/pkg/logx"
	"agora/internal/pkg/resp"
)

const (
	AuthRate         = 0.1
	AuthBurst        = 5
	CreateRoomRate   = 0.05
	CreateRoomBurst  = 3
	PostMessageRate  = 1
	PostMessageBurst = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes the rate limiters, configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewRateLimiter(rate.Limit(AuthRate), AuthBurst)
	roomLimiter := limiter.NewRateLimiter(rate.Limit(CreateRoomRate), CreateRoomBurst)
	messageLimiter := limiter.NewRateLimiter(rate.Limit(PostMessageRate), PostMessageBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.DBPing != nil {
			if err := deps.DBPing(r.Context()); err != nil {
				logx.Error(err, "Health check failed: database unreachable")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}
		}

		data := map[string]string{
			"status":  "ok",
			"service": "Agora Forum Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Use(authLimiter.Middleware)
			auth.Post("/register", HandleRegister(deps))
			auth.Post("/login", HandleLogin(deps))
		})

		api.Get("/home", HandleHome(deps))
		api.Get("/topics", HandleSearchTopics(deps))
		api.Get("/activity", HandleActivity(deps))

		api.Route("/rooms", func(rooms chi.Router) {
			rooms.With(roomLimiter.Middleware).Post("/", HandleCreateRoom(deps))
			rooms.Get("/{id}", HandleGetRoom(deps))
			rooms.Put("/{id}", HandleUpdateRoom(deps))
			rooms.Delete("/{id}", HandleDeleteRoom(deps))
			rooms.With(messageLimiter.Middleware).Post("/{id}/messages", HandlePostMessage(deps))
		})

		api.Delete("/messages/{id}", HandleDeleteMessage(deps))

		api.Route("/users", func(users chi.Router) {
			users.Put("/me", HandleUpdateProfile(deps))
			users.Post("/me/avatar/presign", HandlePresignAvatar(deps))
			users.Get("/{id}", HandleGetProfile(deps))
		})
	})

	return r
}
