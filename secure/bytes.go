package secure

import (
	"crypto/subtle"
	"runtime"
)

const redacted = "[REDACTED]"

// Bytes is an owned buffer of sensitive bytes. The zero value and a nil *Bytes
// are both valid, empty buffers.
//
// Bytes is not safe for concurrent use.
type Bytes struct {
	b      []byte
	locked bool
}

// New wraps b without copying it. Ownership of b passes to the returned
// buffer: the caller must not use b afterwards except to observe that it was
// zeroed by [Bytes.Clear].
func New(b []byte) *Bytes {
	return &Bytes{b: b}
}

// FromString copies s into a newly allocated, page-locked buffer.
func FromString(s string) *Bytes {
	out := alloc(len(s))
	copy(out.b, s)
	return out
}

// alloc returns a zeroed buffer of n bytes that this package owns, locks and
// eventually wipes.
func alloc(n int) *Bytes {
	out := &Bytes{b: make([]byte, n)}
	if n > 0 {
		out.locked = lock(out.b) == nil
	}
	runtime.AddCleanup(out, release, residue{b: out.b, locked: out.locked})
	return out
}

// residue is what the runtime cleanup needs to wipe a buffer whose owner was
// collected. It must not reference the owning *Bytes.
type residue struct {
	b      []byte
	locked bool
}

func release(r residue) {
	wipe(r.b)
	if r.locked {
		_ = unlock(r.b)
	}
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}

// Bytes returns the underlying slice without copying. The slice is only valid
// until the next call to [Bytes.Clear]; callers must not retain it.
func (s *Bytes) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// Len returns the number of bytes held.
func (s *Bytes) Len() int {
	if s == nil {
		return 0
	}
	return len(s.b)
}

// IsEmpty reports whether the buffer holds no bytes, either because it was
// created empty or because it has been cleared.
func (s *Bytes) IsEmpty() bool {
	return s.Len() == 0
}

// Clear overwrites the buffer with zeros, unlocks its pages and marks it
// empty. Clear is idempotent and safe to call on a nil receiver.
func (s *Bytes) Clear() {
	if s == nil || s.b == nil {
		return
	}
	wipe(s.b)
	if s.locked {
		_ = unlock(s.b)
		s.locked = false
	}
	s.b = nil
}

// Clone returns an independent, page-locked copy of s.
func (s *Bytes) Clone() *Bytes {
	out := alloc(s.Len())
	copy(out.b, s.Bytes())
	return out
}

// Equal reports whether s and other hold the same bytes. The comparison runs
// in constant time with respect to the content.
func (s *Bytes) Equal(other *Bytes) bool {
	return subtle.ConstantTimeCompare(s.Bytes(), other.Bytes()) == 1
}

// String implements [fmt.Stringer]. It never reveals the content.
func (s *Bytes) String() string { return redacted }

// GoString implements [fmt.GoStringer]. It never reveals the content.
func (s *Bytes) GoString() string { return redacted }
