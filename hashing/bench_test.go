package hashing_test

import (
	"testing"

	"github.com/hasbyte1/go-argon2/hashing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Builder benchmarks
// ──────────────────────────────────────────────────────────────────────────────
//
// BenchmarkHasher_Default is the real-world cost; the Fast variants measure
// framework overhead only.

func BenchmarkHasher_Default(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = hashing.NewHasher().WithLogger(quiet).OptOutOfSecretKey(true).WithPasswordString("bench-password").Hash()
	}
}

func BenchmarkHasher_Fast(b *testing.B) {
	h := fastHasher().OptOutOfSecretKey(true)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.WithPasswordString("bench-password").Hash()
	}
}

func BenchmarkVerifier_Fast(b *testing.B) {
	hash, _ := fastHasher().OptOutOfSecretKey(true).WithPasswordString("bench-password").Hash()
	v := fastVerifier(hash)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = v.WithPasswordString("bench-password").Verify()
	}
}

func BenchmarkDecode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = hashing.Decode(reference)
	}
}

func BenchmarkEncode(b *testing.B) {
	raw, _ := hashing.Decode(reference)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = raw.Encode()
	}
}
