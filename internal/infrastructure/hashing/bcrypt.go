package hashing

import (
	"fmt"

	usecase "authapi/backend/internal/usecase/account"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with bcrypt. The salt is generated per call
// and embedded in the encoded hash, so identical inputs yield distinct
// outputs and verification needs no external salt storage.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a hasher at the default bcrypt work factor.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Ensure BcryptHasher implements the PasswordHasher interface.
var _ usecase.PasswordHasher = (*BcryptHasher)(nil)

// Hash derives a salted hash from the plaintext password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether hash was produced from password. Comparison runs in
// constant time to the extent bcrypt provides it.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
