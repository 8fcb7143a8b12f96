package token

import (
	"encoding/hex"
	"testing"
)

func TestGenerate_LengthAndEncoding(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	tok, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(tok) != tokenBytes*2 {
		t.Fatalf("token length: got %d want %d", len(tok), tokenBytes*2)
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Fatalf("token is not valid hex: %v", err)
	}
}

func TestGenerate_Unique(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d generations", i)
		}
		seen[tok] = true
	}
}
