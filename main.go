package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/awaisfaryad25/blog-auth-api/internal/auth"
	"github.com/awaisfaryad25/blog-auth-api/internal/config"
	"github.com/awaisfaryad25/blog-auth-api/internal/db"
	"github.com/awaisfaryad25/blog-auth-api/internal/handlers"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	ctx := context.Background()
	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("schema setup failed")
	}

	issuer := auth.NewIssuer([]byte(cfg.JWTSecret))
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	r := handlers.NewRouter(handlers.RouterConfig{
		Logger:             logger,
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
		LoginTokenTTL:      cfg.LoginTokenTTL,
		RegisterTokenTTL:   cfg.RegisterTokenTTL,
	}, store, issuer, hasher)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
