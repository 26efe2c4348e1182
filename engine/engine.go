package engine

import "fmt"

// Variant selects the Argon2 flavour. The numeric values are the type tags
// mixed into the initial hash by RFC 9106.
type Variant uint32

const (
	// Argon2d uses data-dependent memory access.
	Argon2d Variant = 0
	// Argon2i uses data-independent memory access.
	Argon2i Variant = 1
	// Argon2id is Argon2i for the first half of the first pass and Argon2d
	// afterwards.
	Argon2id Variant = 2
)

// String returns the PHC identifier of v ("argon2d", "argon2i", "argon2id").
func (v Variant) String() string {
	switch v {
	case Argon2d:
		return "argon2d"
	case Argon2i:
		return "argon2i"
	case Argon2id:
		return "argon2id"
	default:
		return fmt.Sprintf("variant(%d)", uint32(v))
	}
}

// Valid reports whether v is one of the three known variants.
func (v Variant) Valid() bool {
	return v == Argon2d || v == Argon2i || v == Argon2id
}

// ParseVariant maps a PHC identifier back to its Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "argon2d":
		return Argon2d, true
	case "argon2i":
		return Argon2i, true
	case "argon2id":
		return Argon2id, true
	default:
		return 0, false
	}
}

// Version is the Argon2 algorithm revision.
type Version uint32

const (
	// Version10 is the original revision, kept for legacy hashes.
	Version10 Version = 0x10
	// Version13 is the current revision defined by RFC 9106.
	Version13 Version = 0x13

	// LatestVersion is the revision new hashes should use.
	LatestVersion = Version13
)

// String returns the hexadecimal form used in documentation, e.g. "0x13".
func (v Version) String() string {
	return fmt.Sprintf("0x%x", uint32(v))
}

// Valid reports whether v is a known revision.
func (v Version) Valid() bool {
	return v == Version10 || v == Version13
}

// Params carries the cost and identity parameters of one computation.
// MemorySize is in KiB. Lanes is the degree of parallelism that shapes the
// output; Threads only bounds how many goroutines compute it.
type Params struct {
	Variant    Variant
	Version    Version
	MemorySize uint32
	Iterations uint32
	Lanes      uint32
	Threads    uint32
}

// Engine computes and verifies raw Argon2 tags. Implementations hold no state
// across calls, block until done and are deterministic for identical inputs.
// A nil or empty secret or ad means "not supplied".
type Engine interface {
	// HashRaw returns a tag of outLen bytes.
	HashRaw(p Params, password, salt, secret, ad []byte, outLen uint32) ([]byte, error)

	// Verify recomputes the tag for the supplied material and compares it with
	// expected in constant time. A mismatch is (false, nil); an error means the
	// computation itself could not run.
	Verify(p Params, password, salt, secret, ad, expected []byte) (bool, error)
}
