package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	usecase "authapi/backend/internal/usecase/account"
)

// tokenBytes is the entropy of a generated token. Hex encoding doubles the
// length, so tokens are 64-character strings.
const tokenBytes = 32

// Generator issues opaque access tokens from the operating system's
// cryptographically secure random source.
type Generator struct{}

// NewGenerator constructs a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Ensure Generator implements the TokenGenerator interface.
var _ usecase.TokenGenerator = (*Generator)(nil)

// Generate returns a fresh 256-bit hex-encoded token. It fails only when the
// random source is unavailable; callers must not fall back to anything
// predictable.
func (g *Generator) Generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading secure random source: %w", err)
	}
	return hex.EncodeToString(b), nil
}
