// Package credentials owns password hash generation and verification.
package credentials

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Cost is the bcrypt work factor used for every stored password.
	Cost = 10
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

var hashPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HashPassword returns a salted bcrypt digest of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// LooksHashed reports whether value carries a bcrypt prefix. It is only used
// to reject non-hash input to hash-taking operations, never to skip hashing.
func LooksHashed(value string) bool {
	for _, p := range hashPrefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	return false
}

// ValidHash reports whether value is a well-formed bcrypt digest.
func ValidHash(value string) bool {
	if !LooksHashed(value) {
		return false
	}
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}
