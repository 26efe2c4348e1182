package hashing

import "runtime"

const (
	// DefaultBackend is the only supported backend.
	DefaultBackend = BackendGo

	// DefaultHashLength is the default length of the raw hash in bytes.
	DefaultHashLength uint32 = 32

	// DefaultIterations is the default number of passes over memory.
	DefaultIterations uint32 = 128

	// DefaultMemorySize is the default memory cost in KiB (4 MiB).
	DefaultMemorySize uint32 = 4096

	// DefaultSaltLength is the default length of a random salt in bytes.
	DefaultSaltLength uint32 = 32

	// DefaultVariant is Argon2id.
	DefaultVariant = Argon2id

	// DefaultVersion is the latest Argon2 version, 0x13.
	DefaultVersion = Version13

	DefaultPasswordClearing   = true
	DefaultSecretKeyClearing  = false
	DefaultOptOutOfRandomSalt = false
	DefaultOptOutOfSecretKey  = false
)

// DefaultLanes returns the number of logical CPUs.
func DefaultLanes() uint32 { return numCPU() }

// DefaultThreads returns the number of logical CPUs.
func DefaultThreads() uint32 { return numCPU() }

func numCPU() uint32 {
	if n := runtime.NumCPU(); n > 1 {
		return uint32(n)
	}
	return 1
}

// DefaultConfig returns the default configuration. Lanes and threads are read
// from the host once, here, and stored as plain values.
func DefaultConfig() Config {
	return Config{
		backend:            DefaultBackend,
		hashLength:         DefaultHashLength,
		iterations:         DefaultIterations,
		lanes:              DefaultLanes(),
		memorySize:         DefaultMemorySize,
		threads:            DefaultThreads(),
		variant:            DefaultVariant,
		version:            DefaultVersion,
		passwordClearing:   DefaultPasswordClearing,
		secretKeyClearing:  DefaultSecretKeyClearing,
		optOutOfRandomSalt: DefaultOptOutOfRandomSalt,
		optOutOfSecretKey:  DefaultOptOutOfSecretKey,
	}
}
