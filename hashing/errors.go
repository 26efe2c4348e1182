package hashing

import (
	"errors"
	"fmt"

	"github.com/hasbyte1/go-argon2/engine"
)

// Fault kinds. Every error returned by this package wraps exactly one of them.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := v.Verify()
//	if errors.Is(err, hashing.ErrData) {
//	    // the caller's input was bad
//	}
var (
	// ErrConfiguration reports a parameter that violates an invariant of
	// [Config].
	ErrConfiguration = errors.New("hashing: configuration error")

	// ErrData reports invalid or missing caller input: an empty password, a
	// malformed hash string or a missing secret key or salt opt-out.
	ErrData = errors.New("hashing: data error")

	// ErrEncoding reports a malformed number inside a hash string.
	ErrEncoding = errors.New("hashing: encoding error")

	// ErrBug reports a state the API should make unreachable, such as
	// verifying without a hash string or an unexpected engine code.
	ErrBug = errors.New("hashing: bug")
)

// Specific faults. Each wraps its kind, so errors.Is matches both.
var (
	ErrUnsupportedBackend      = fmt.Errorf("%w: unsupported backend", ErrConfiguration)
	ErrHashLengthTooShort      = fmt.Errorf("%w: hash length must be at least %d", ErrConfiguration, minHashLength)
	ErrMemorySizeTooSmall      = fmt.Errorf("%w: memory size must be at least %d KiB", ErrConfiguration, minMemorySize)
	ErrMemorySizeNotPowerOfTwo = fmt.Errorf("%w: memory size must be a power of two", ErrConfiguration)
	ErrIterationsTooSmall      = fmt.Errorf("%w: iterations must be at least 1", ErrConfiguration)
	ErrLanesTooSmall           = fmt.Errorf("%w: lanes must be at least 1", ErrConfiguration)
	ErrThreadsTooSmall         = fmt.Errorf("%w: threads must be at least 1", ErrConfiguration)
	ErrUnsupportedVariant      = fmt.Errorf("%w: unsupported variant", ErrConfiguration)
	ErrUnsupportedVersion      = fmt.Errorf("%w: unsupported version", ErrConfiguration)

	ErrPasswordMissing  = fmt.Errorf("%w: password is missing", ErrData)
	ErrSecretKeyMissing = fmt.Errorf("%w: secret key is missing and OptOutOfSecretKey is not set", ErrData)
	ErrSaltNotRandom    = fmt.Errorf("%w: salt is not random and OptOutOfRandomSalt is not set", ErrData)
	ErrHashInvalid      = fmt.Errorf("%w: invalid hash string", ErrData)
	ErrInvalidBase64    = fmt.Errorf("%w: invalid base64", ErrData)

	ErrInvalidNumber = fmt.Errorf("%w: invalid number", ErrEncoding)

	ErrHashMissing = fmt.Errorf("%w: no hash string to verify against", ErrBug)
)

// Kind names the class of a fault.
type Kind string

const (
	KindNone          Kind = ""
	KindConfiguration Kind = "configuration"
	KindData          Kind = "data"
	KindEncoding      Kind = "encoding"
	KindBug           Kind = "bug"
)

// KindOf classifies err. Errors that did not come from this package count
// as [KindBug].
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrData):
		return KindData
	case errors.Is(err, ErrEncoding):
		return KindEncoding
	default:
		return KindBug
	}
}

// hashFault maps an engine error from a hash computation onto a fault kind.
// Parameters the engine rejects are configuration faults, rejected input
// lengths are data faults and anything else is a bug.
func hashFault(err error) error {
	code, ok := engine.CodeOf(err)
	switch {
	case ok && code.IsParameter():
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	case ok && code.IsInput():
		return fmt.Errorf("%w: %w", ErrData, err)
	default:
		return fmt.Errorf("%w: %w", ErrBug, err)
	}
}

// verifyFault maps any engine error from a verification onto ErrBug. A
// mismatch is not an error and never reaches here.
func verifyFault(err error) error {
	return fmt.Errorf("%w: %w", ErrBug, err)
}
