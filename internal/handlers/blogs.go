package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/awaisfaryad25/blog-auth-api/internal/middleware"
	"github.com/awaisfaryad25/blog-auth-api/internal/models"
)

type BlogsHandler struct {
	store Store
}

func NewBlogsHandler(store Store) *BlogsHandler {
	return &BlogsHandler{store: store}
}

type CreateBlogRequest struct {
	Title       string     `json:"title"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type BlogsResponse struct {
	Message     string        `json:"message"`
	Blogs       []models.Blog `json:"blogs"`
	TotalBlogs  int           `json:"totalBlogs"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// Create stores a new blog owned by the authenticated subject.
func (h *BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Title == "" || req.Category == "" || req.Summary == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "title, category, summary, and content are required")
		return
	}

	created, err := h.store.CreateBlog(r.Context(), models.Blog{
		Title:       req.Title,
		Image:       req.Image,
		Category:    req.Category,
		Summary:     req.Summary,
		Content:     req.Content,
		Tags:        req.Tags,
		Author:      subject.ID,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Blog created successfully",
		"blog":    created,
	})
}

func (h *BlogsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePositiveInt(r.URL.Query().Get("page"), 1)
	limit := parsePositiveInt(r.URL.Query().Get("limit"), 10)
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	blogs, total, err := h.store.ListBlogs(r.Context(), limit, offset)
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}

	totalPages := (total + limit - 1) / limit
	respondJSON(w, http.StatusOK, BlogsResponse{
		Message:     "Blogs retrieved successfully",
		Blogs:       blogs,
		TotalBlogs:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	})
}

func (h *BlogsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	blog, err := h.store.GetBlogByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	if blog == nil {
		respondError(w, http.StatusNotFound, "blog not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Blog retrieved successfully",
		"blog":    blog,
	})
}

type UpdateBlogRequest struct {
	Title       string     `json:"title"`
	Image       *string    `json:"image"`
	Category    string     `json:"category"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Update applies the provided fields to a blog. Only the author may update it.
func (h *BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	blog, err := h.store.GetBlogByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	if blog == nil {
		respondError(w, http.StatusNotFound, "blog not found")
		return
	}
	if blog.Author != subject.ID {
		respondError(w, http.StatusForbidden, "you are not authorized to update this blog")
		return
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Image != nil {
		blog.Image = *req.Image
	}
	if req.Category != "" {
		blog.Category = req.Category
	}
	if req.Summary != "" {
		blog.Summary = req.Summary
	}
	if req.Content != "" {
		blog.Content = req.Content
	}
	if req.Tags != nil {
		blog.Tags = req.Tags
	}
	if req.PublishedAt != nil {
		blog.PublishedAt = req.PublishedAt
	}

	updated, err := h.store.UpdateBlog(r.Context(), *blog)
	if err != nil {
		respondStoreError(r.Context(), w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "blog not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Blog updated successfully",
		"blog":    updated,
	})
}

func parsePositiveInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
