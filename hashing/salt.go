package hashing

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
)

// Salt is either random, regenerated before every hash, or deterministic,
// a fixed value that is only accepted with OptOutOfRandomSalt set.
type Salt struct {
	b      []byte
	random bool
}

// RandomSalt returns a salt of length bytes that is filled with fresh
// cryptographically secure bytes before every hash.
func RandomSalt(length uint32) Salt {
	return Salt{b: make([]byte, length), random: true}
}

// DeterministicSalt returns a fixed salt holding a copy of b.
func DeterministicSalt(b []byte) Salt {
	return Salt{b: bytes.Clone(b)}
}

// IsRandom reports whether s is regenerated before every hash.
func (s Salt) IsRandom() bool { return s.random }

// Len returns the salt length in bytes.
func (s Salt) Len() int { return len(s.b) }

// Bytes returns a copy of the current salt bytes.
func (s Salt) Bytes() []byte { return bytes.Clone(s.b) }

// refresh regenerates a random salt in place. Deterministic salts are left
// untouched.
func (s *Salt) refresh() error {
	if !s.random {
		return nil
	}
	if _, err := io.ReadFull(rand.Reader, s.b); err != nil {
		return fmt.Errorf("hashing: failed to generate salt: %w", err)
	}
	return nil
}
