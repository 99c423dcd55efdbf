package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/awaisfaryad25/blog-auth-api/internal/auth"
	appmiddleware "github.com/awaisfaryad25/blog-auth-api/internal/middleware"
)

type RouterConfig struct {
	Logger             zerolog.Logger
	CorsAllowedOrigins []string
	LoginTokenTTL      time.Duration
	RegisterTokenTTL   time.Duration
}

// NewRouter wires all routes. Everything under /users and /blogs sits behind
// the bearer-token gate.
func NewRouter(cfg RouterConfig, store Store, issuer *auth.Issuer, hasher auth.PasswordHasher) chi.Router {
	authHandler := NewAuthHandler(store, issuer, hasher, cfg.LoginTokenTTL, cfg.RegisterTokenTTL)
	usersHandler := NewUsersHandler(store, hasher)
	blogsHandler := NewBlogsHandler(store)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appmiddleware.RequestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Authenticator(issuer))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", usersHandler.List)
			r.Get("/{id}", usersHandler.GetByID)
			r.Put("/{id}", usersHandler.Update)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Post("/", blogsHandler.Create)
			r.Get("/", blogsHandler.List)
			r.Get("/{id}", blogsHandler.GetByID)
			r.Put("/{id}", blogsHandler.Update)
		})
	})

	return r
}
