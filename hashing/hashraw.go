package hashing

import (
	"bytes"
)

// HashRaw is the decoded form of a hash: its parameters, salt and raw hash
// bytes. It is immutable; accessors return copies.
type HashRaw struct {
	variant    Variant
	version    Version
	memorySize uint32
	iterations uint32
	lanes      uint32
	rawSalt    []byte
	rawHash    []byte
}

// NewHashRaw assembles a HashRaw from its parts. salt and hash are copied.
func NewHashRaw(variant Variant, version Version, memorySize, iterations, lanes uint32, salt, hash []byte) HashRaw {
	return HashRaw{
		variant:    variant,
		version:    version,
		memorySize: memorySize,
		iterations: iterations,
		lanes:      lanes,
		rawSalt:    bytes.Clone(salt),
		rawHash:    bytes.Clone(hash),
	}
}

// Variant returns the Argon2 variant.
func (h HashRaw) Variant() Variant { return h.variant }

// Version returns the Argon2 version.
func (h HashRaw) Version() Version { return h.version }

// MemorySize returns the memory cost in KiB.
func (h HashRaw) MemorySize() uint32 { return h.memorySize }

// Iterations returns the number of passes.
func (h HashRaw) Iterations() uint32 { return h.iterations }

// Lanes returns the degree of parallelism.
func (h HashRaw) Lanes() uint32 { return h.lanes }

// RawSaltBytes returns a copy of the salt.
func (h HashRaw) RawSaltBytes() []byte { return bytes.Clone(h.rawSalt) }

// RawHashBytes returns a copy of the raw hash.
func (h HashRaw) RawHashBytes() []byte { return bytes.Clone(h.rawHash) }

// Equal reports whether h and o carry the same parameters and bytes.
func (h HashRaw) Equal(o HashRaw) bool {
	return h.variant == o.variant &&
		h.version == o.version &&
		h.memorySize == o.memorySize &&
		h.iterations == o.iterations &&
		h.lanes == o.lanes &&
		bytes.Equal(h.rawSalt, o.rawSalt) &&
		bytes.Equal(h.rawHash, o.rawHash)
}

// String returns the PHC encoding of h.
func (h HashRaw) String() string { return h.Encode() }
