package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/awaisfaryad25/blog-auth-api/internal/apperrors"
	"github.com/awaisfaryad25/blog-auth-api/internal/middleware"
	"github.com/awaisfaryad25/blog-auth-api/internal/models"
)

// Store is what the handlers need from the persistence layer. *db.Store
// satisfies it; tests swap in a fake.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (*models.User, error)
	CreateBlog(ctx context.Context, blog models.Blog) (*models.Blog, error)
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	ListBlogs(ctx context.Context, limit, offset int) ([]models.Blog, int, error)
	UpdateBlog(ctx context.Context, blog models.Blog) (*models.Blog, error)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondStoreError translates a persistence failure into a response. Internal
// details go to the log, never to the client.
func respondStoreError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "email already in use")
	case errors.Is(err, apperrors.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	default:
		logger := middleware.Logger(ctx)
		logger.Error().Err(err).Msg("store error")
		respondError(w, http.StatusInternalServerError, "server error")
	}
}
