package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"devconnector/internal/config"
	"devconnector/internal/handler"
	"devconnector/internal/middleware"
)

type Handlers struct {
	User    *handler.UserHandler
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Post    *handler.PostHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/users", h.User.Register)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/", h.Auth.Me)
		})

		api.Route("/profile", func(profile chi.Router) {
			profile.Get("/", h.Profile.List)
			profile.Get("/user/{user_id}", h.Profile.ByUserID)

			profile.Group(func(private chi.Router) {
				private.Use(authMiddleware.RequireAuth)
				private.Get("/me", h.Profile.Me)
				private.Post("/", h.Profile.Save)
				private.Delete("/", h.Profile.DeleteAccount)
				private.Put("/experience", h.Profile.AddExperience)
				private.Delete("/experience/{exp_id}", h.Profile.RemoveExperience)
				private.Put("/education", h.Profile.AddEducation)
				private.Delete("/education/{edu_id}", h.Profile.RemoveEducation)
			})
		})

		api.Route("/posts", func(posts chi.Router) {
			posts.Use(authMiddleware.RequireAuth)
			posts.Post("/", h.Post.Create)
			posts.Get("/", h.Post.List)
			posts.Get("/{id}", h.Post.ByID)
			posts.Delete("/{id}", h.Post.Delete)
			posts.Put("/like/{id}", h.Post.Like)
			posts.Put("/unlike/{id}", h.Post.Unlike)
			posts.Post("/comment/{id}", h.Post.AddComment)
			posts.Delete("/comment/{id}/{comment_id}", h.Post.RemoveComment)
		})
	})

	return r
}
