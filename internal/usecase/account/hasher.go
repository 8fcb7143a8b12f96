package account

// PasswordHasher abstracts the one-way credential transform.
type PasswordHasher interface {
	// Hash derives a salted, storable hash from the plaintext password.
	// Two calls with the same input produce different outputs.
	Hash(password string) (string, error)
	// Verify reports whether hash was derived from password.
	Verify(password, hash string) bool
}
