package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awaisfaryad25/blog-auth-api/internal/auth"
)

type UsersHandler struct {
	store  Store
	hasher auth.PasswordHasher
}

func NewUsersHandler(store Store, hasher auth.PasswordHasher) *UsersHandler {
	return &UsersHandler{store: store, hasher: hasher}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Users retrieved successfully",
		"users":   users,
	})
}

func (h *UsersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User retrieved successfully",
		"user":    user,
	})
}

type UpdateUserRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	Password  string `json:"password"`
}

// Update applies the provided fields to a user. An email change re-validates
// uniqueness, a password change re-hashes.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	if req.Email != "" && req.Email != user.Email {
		if !emailPattern.MatchString(req.Email) {
			respondError(w, http.StatusBadRequest, "a valid email is required")
			return
		}
		existing, err := h.store.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			respondStoreError(r.Context(), w, err)
			return
		}
		if existing != nil {
			respondError(w, http.StatusConflict, "email already in use")
			return
		}
		user.Email = req.Email
	}
	if req.Firstname != "" {
		user.Firstname = req.Firstname
	}
	if req.Lastname != "" {
		user.Lastname = req.Lastname
	}
	if req.Contact != "" {
		user.Contact = req.Contact
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			respondError(w, http.StatusBadRequest, "password must be at least 6 characters")
			return
		}
		hash, err := h.hasher.Hash(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}
		user.PasswordHash = hash
	}

	updated, err := h.store.UpdateUser(r.Context(), *user)
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    updated,
	})
}
