package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var errEmptyPassword = errors.New("empty password")

// HashPassword produces a salted bcrypt hash. The output string embeds the
// algorithm, cost and salt, so verification needs nothing beyond the hash
// itself.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. The
// comparison is constant-time; a mismatch is false, never an error.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
