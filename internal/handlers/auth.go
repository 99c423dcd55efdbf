package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/awaisfaryad25/blog-auth-api/internal/auth"
	"github.com/awaisfaryad25/blog-auth-api/internal/middleware"
	"github.com/awaisfaryad25/blog-auth-api/internal/models"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthHandler struct {
	store       Store
	issuer      *auth.Issuer
	hasher      auth.PasswordHasher
	loginTTL    time.Duration
	registerTTL time.Duration
}

func NewAuthHandler(store Store, issuer *auth.Issuer, hasher auth.PasswordHasher, loginTTL, registerTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		store:       store,
		issuer:      issuer,
		hasher:      hasher,
		loginTTL:    loginTTL,
		registerTTL: registerTTL,
	}
}

type RegisterRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	Password  string `json:"password"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	UserID  string       `json:"userId"`
	User    *models.User `json:"user"`
}

// Register creates a user and returns a bearer token for it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		respondError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	// Fast path only; the unique constraint on users.email catches the race
	// where two registrations pass this check concurrently.
	existing, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "email already in use")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		logger := middleware.Logger(r.Context())
		logger.Error().Err(err).Msg("password hash failed")
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		Contact:      req.Contact,
		PasswordHash: hash,
	})
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}

	token, err := h.issuer.Issue(created.ID, created.Email, h.registerTTL)
	if err != nil {
		logger := middleware.Logger(r.Context())
		logger.Error().Err(err).Msg("token signing failed")
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		UserID:  created.ID,
		User:    created,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a bearer token. An unknown email and
// a wrong password produce identical responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	if user == nil || !h.hasher.Check(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Email, h.loginTTL)
	if err != nil {
		logger := middleware.Logger(r.Context())
		logger.Error().Err(err).Msg("token signing failed")
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		UserID:  user.ID,
		User:    user,
	})
}
