package hashing

import (
	"fmt"
	"math/bits"

	"github.com/hasbyte1/go-argon2/engine"
)

const (
	minHashLength = 4
	minMemorySize = 8
)

// Variant selects the Argon2 flavour.
type Variant = engine.Variant

// Version is the Argon2 algorithm revision.
type Version = engine.Version

const (
	Argon2d  = engine.Argon2d
	Argon2i  = engine.Argon2i
	Argon2id = engine.Argon2id

	Version10 = engine.Version10
	Version13 = engine.Version13
)

// Backend selects the Argon2 implementation.
type Backend int

const (
	// BackendGo is the engine shipped in package engine.
	BackendGo Backend = iota
)

// String returns the backend name accepted by [ParseBackend].
func (b Backend) String() string {
	if b == BackendGo {
		return "go"
	}
	return fmt.Sprintf("backend(%d)", int(b))
}

// ParseBackend maps a backend name back to its Backend.
func ParseBackend(s string) (Backend, bool) {
	if s == "go" {
		return BackendGo, true
	}
	return 0, false
}

// Config is the parameter set of one [Hasher] or [Verifier].
//
// The zero value is not useful; start from [DefaultConfig]. Setters clamp
// iterations, lanes and threads up to 1 and store every other value as
// given; [Config.Validate] reports the first invalid one.
type Config struct {
	backend    Backend
	hashLength uint32
	iterations uint32
	lanes      uint32
	memorySize uint32
	threads    uint32
	variant    Variant
	version    Version

	passwordClearing   bool
	secretKeyClearing  bool
	optOutOfRandomSalt bool
	optOutOfSecretKey  bool
}

// Backend returns the selected implementation.
func (c Config) Backend() Backend { return c.backend }

// HashLength returns the length of the raw hash in bytes.
func (c Config) HashLength() uint32 { return c.hashLength }

// Iterations returns the number of passes over memory.
func (c Config) Iterations() uint32 { return c.iterations }

// Lanes returns the degree of parallelism encoded in the hash.
func (c Config) Lanes() uint32 { return c.lanes }

// MemorySize returns the memory cost in KiB.
func (c Config) MemorySize() uint32 { return c.memorySize }

// Threads returns the upper bound on goroutines per computation.
func (c Config) Threads() uint32 { return c.threads }

// Variant returns the Argon2 variant.
func (c Config) Variant() Variant { return c.variant }

// Version returns the Argon2 version.
func (c Config) Version() Version { return c.version }

// PasswordClearing reports whether the password is zeroed after each call.
func (c Config) PasswordClearing() bool { return c.passwordClearing }

// SecretKeyClearing reports whether the secret key is zeroed after each call.
func (c Config) SecretKeyClearing() bool { return c.secretKeyClearing }

// OptOutOfRandomSalt reports whether a deterministic salt is allowed.
func (c Config) OptOutOfRandomSalt() bool { return c.optOutOfRandomSalt }

// OptOutOfSecretKey reports whether hashing without a secret key is allowed.
func (c Config) OptOutOfSecretKey() bool { return c.optOutOfSecretKey }

// SetBackend stores b; an unsupported backend fails [Config.Validate].
func (c *Config) SetBackend(b Backend) { c.backend = b }

// SetHashLength stores n; values below 4 fail [Config.Validate].
func (c *Config) SetHashLength(n uint32) { c.hashLength = n }

// SetIterations stores n, raising 0 to 1.
func (c *Config) SetIterations(n uint32) { c.iterations = max(n, 1) }

// SetLanes stores n, raising 0 to 1.
func (c *Config) SetLanes(n uint32) { c.lanes = max(n, 1) }

// SetMemorySize stores kib; it must be a power of two and at least 8.
func (c *Config) SetMemorySize(kib uint32) { c.memorySize = kib }

// SetThreads stores n, raising 0 to 1.
func (c *Config) SetThreads(n uint32) { c.threads = max(n, 1) }

// SetVariant stores v.
func (c *Config) SetVariant(v Variant) { c.variant = v }

// SetVersion stores v.
func (c *Config) SetVersion(v Version) { c.version = v }

// SetPasswordClearing sets the password clearing policy.
func (c *Config) SetPasswordClearing(b bool) { c.passwordClearing = b }

// SetSecretKeyClearing sets the secret-key clearing policy.
func (c *Config) SetSecretKeyClearing(b bool) { c.secretKeyClearing = b }

// SetOptOutOfRandomSalt allows or forbids a deterministic salt.
func (c *Config) SetOptOutOfRandomSalt(b bool) { c.optOutOfRandomSalt = b }

// SetOptOutOfSecretKey allows or forbids hashing without a secret key.
func (c *Config) SetOptOutOfSecretKey(b bool) { c.optOutOfSecretKey = b }

// Validate returns the first violated invariant, checking the backend, then
// the hash length, then the memory size, then iterations, lanes and threads,
// then the variant and version.
//
// Iterations, lanes and threads can only be 0 in a Config that skipped the
// setters, such as the zero value.
func (c Config) Validate() error {
	if err := validateBackend(c.backend); err != nil {
		return err
	}
	if err := validateHashLength(c.hashLength); err != nil {
		return err
	}
	if err := validateMemorySize(c.memorySize); err != nil {
		return err
	}
	if c.iterations < 1 {
		return ErrIterationsTooSmall
	}
	if c.lanes < 1 {
		return ErrLanesTooSmall
	}
	if err := validateThreads(c.threads); err != nil {
		return err
	}
	if !c.variant.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedVariant, c.variant)
	}
	if !c.version.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, c.version)
	}
	return nil
}

func validateBackend(b Backend) error {
	if b != BackendGo {
		return fmt.Errorf("%w: %s", ErrUnsupportedBackend, b)
	}
	return nil
}

func validateThreads(n uint32) error {
	if n < 1 {
		return ErrThreadsTooSmall
	}
	return nil
}

func validateHashLength(n uint32) error {
	if n < minHashLength {
		return fmt.Errorf("%w, got %d", ErrHashLengthTooShort, n)
	}
	return nil
}

func validateMemorySize(kib uint32) error {
	if kib < minMemorySize {
		return fmt.Errorf("%w, got %d", ErrMemorySizeTooSmall, kib)
	}
	if bits.OnesCount32(kib) != 1 {
		return fmt.Errorf("%w, got %d", ErrMemorySizeNotPowerOfTwo, kib)
	}
	return nil
}

func (c Config) params() engine.Params {
	return engine.Params{
		Variant:    c.variant,
		Version:    c.version,
		MemorySize: c.memorySize,
		Iterations: c.iterations,
		Lanes:      c.lanes,
		Threads:    c.threads,
	}
}

// NeedsRehash reports whether hash was produced with a variant, version,
// memory size, iteration count, lane count or hash length other than c's.
// Call it after a successful verification and re-hash when it returns true.
func (c Config) NeedsRehash(hash string) (bool, error) {
	raw, err := Decode(hash)
	if err != nil {
		return false, err
	}
	return raw.variant != c.variant ||
		raw.version != c.version ||
		raw.memorySize != c.memorySize ||
		raw.iterations != c.iterations ||
		raw.lanes != c.lanes ||
		uint32(len(raw.rawHash)) != c.hashLength, nil
}
