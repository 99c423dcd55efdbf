package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/awaisfaryad25/blog-auth-api/internal/apperrors"
	"github.com/awaisfaryad25/blog-auth-api/internal/auth"
	"github.com/awaisfaryad25/blog-auth-api/internal/models"
)

// fakeStore is an in-memory Store. Like the real one, it enforces email
// uniqueness and keeps blog author and creation time immutable on update.
type fakeStore struct {
	mu    sync.Mutex
	users map[string]models.User
	blogs map[string]models.Blog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]models.User),
		blogs: make(map[string]models.Blog),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, apperrors.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, user models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[user.ID]
	if !ok {
		return nil, nil
	}
	for id, u := range f.users {
		if id != user.ID && u.Email == user.Email {
			return nil, apperrors.ErrDuplicateEmail
		}
	}
	user.CreatedAt = existing.CreatedAt
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeStore) CreateBlog(_ context.Context, blog models.Blog) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blog.ID = uuid.NewString()
	blog.CreatedAt = time.Now()
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	f.blogs[blog.ID] = blog
	return &blog, nil
}

func (f *fakeStore) GetBlogByID(_ context.Context, id string) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.blogs[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeStore) ListBlogs(_ context.Context, limit, offset int) ([]models.Blog, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]models.Blog, 0, len(f.blogs))
	for _, b := range f.blogs {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset >= total {
		return []models.Blog{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeStore) UpdateBlog(_ context.Context, blog models.Blog) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.blogs[blog.ID]
	if !ok {
		return nil, nil
	}
	blog.Author = existing.Author
	blog.CreatedAt = existing.CreatedAt
	f.blogs[blog.ID] = blog
	return &blog, nil
}

func newTestRouter(t *testing.T) (chi.Router, *fakeStore, *auth.Issuer) {
	t.Helper()
	store := newFakeStore()
	issuer := auth.NewIssuer([]byte("test-secret"))
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	router := NewRouter(RouterConfig{
		Logger:             zerolog.Nop(),
		CorsAllowedOrigins: []string{"*"},
		LoginTokenTTL:      time.Hour,
		RegisterTokenTTL:   24 * time.Hour,
	}, store, issuer, hasher)
	return router, store, issuer
}

// registerUser runs a real registration and returns the issued token and id.
func registerUser(t *testing.T, router http.Handler, email, password string) (token, userID string) {
	t.Helper()
	body, err := json.Marshal(RegisterRequest{
		Firstname: "Test",
		Lastname:  "User",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.UserID)
	return resp.Token, resp.UserID
}

func doJSON(t *testing.T, router http.Handler, method, target, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
