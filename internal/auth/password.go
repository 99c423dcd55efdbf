package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/awaisfaryad25/blog-auth-api/internal/apperrors"
)

// PasswordHasher wraps bcrypt with a configured work factor. bcrypt generates
// a fresh random salt per call, so hashing the same password twice yields
// different stored hashes, and comparison runs in constant time on the digest.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{cost: cost}
}

func (h PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", apperrors.Validation("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Check reports whether password matches the stored hash. A mismatch is not
// an error, just false.
func (h PasswordHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
