package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/awaisfaryad25/blog-auth-api/internal/auth"
)

// Subject is the authenticated identity attached to the request context by
// Authenticator.
type Subject struct {
	ID    string
	Email string
}

type subjectKey struct{}

// Authenticator requires a valid "Bearer <token>" Authorization header.
// A missing or malformed header is rejected without hitting the issuer, and
// every failure gets the same 401 body so clients cannot tell a bad signature
// from an expired token.
func Authenticator(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			const prefix = "Bearer "
			if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
				unauthorized(w)
				return
			}
			claims, err := issuer.Verify(strings.TrimSpace(header[len(prefix):]))
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), subjectKey{}, Subject{
				ID:    claims.Subject,
				Email: claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFrom returns the authenticated subject, if Authenticator ran.
func SubjectFrom(ctx context.Context) (Subject, bool) {
	s, ok := ctx.Value(subjectKey{}).(Subject)
	return s, ok && s.ID != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
}
