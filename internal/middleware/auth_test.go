package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awaisfaryad25/blog-auth-api/internal/auth"
)

func gateFixture(t *testing.T) (*auth.Issuer, http.Handler, *Subject) {
	t.Helper()
	issuer := auth.NewIssuer([]byte("test-secret"))
	var seen Subject
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := SubjectFrom(r.Context())
		require.True(t, ok)
		seen = subject
		w.WriteHeader(http.StatusOK)
	})
	return issuer, Authenticator(issuer)(next), &seen
}

func TestAuthenticatorValidToken(t *testing.T) {
	issuer, handler, seen := gateFixture(t)

	token, err := issuer.Issue("user-42", "a@x.com", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", seen.ID)
	assert.Equal(t, "a@x.com", seen.Email)
}

func TestAuthenticatorMissingHeader(t *testing.T) {
	_, handler, _ := gateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorWrongScheme(t *testing.T) {
	_, handler, _ := gateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// The client must not be able to tell an expired token from a forged one.
func TestAuthenticatorFailureIndistinguishable(t *testing.T) {
	issuer, handler, _ := gateFixture(t)

	expired, err := issuer.Issue("user-42", "a@x.com", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	forged, err := auth.NewIssuer([]byte("another-secret")).Issue("user-42", "a@x.com", time.Hour)
	require.NoError(t, err)

	bodies := make([]string, 0, 3)
	for _, token := range []string{expired, forged, "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}

func TestSubjectFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := SubjectFrom(req.Context())
	assert.False(t, ok)
}
