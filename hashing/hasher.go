package hashing

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/hasbyte1/go-argon2/engine"
	"github.com/hasbyte1/go-argon2/secure"
)

// Hasher turns a password into an Argon2 hash.
//
// Builder methods mutate the Hasher and return it for chaining. A Hasher is
// owned by one caller and is not safe for concurrent use; run separate
// instances for parallel work.
type Hasher struct {
	config   Config
	engine   engine.Engine
	logger   *slog.Logger
	observer Observer

	password       *secure.Bytes
	secretKey      *secure.Bytes
	additionalData []byte
	salt           Salt

	state State
}

// NewHasher returns a Hasher with [DefaultConfig], a random salt of
// [DefaultSaltLength] bytes and the [engine.Native] engine.
func NewHasher() *Hasher {
	return &Hasher{
		config: DefaultConfig(),
		engine: engine.Native{},
		logger: slog.Default(),
		salt:   RandomSalt(DefaultSaltLength),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inputs
// ──────────────────────────────────────────────────────────────────────────────

// WithPassword takes ownership of password. The slice is zeroed when the
// password is cleared, so the caller must not reuse it.
func (h *Hasher) WithPassword(password []byte) *Hasher {
	h.password.Clear()
	h.password = secure.New(password)
	return h.touch()
}

// WithPasswordString copies password into a buffer the Hasher owns.
func (h *Hasher) WithPasswordString(password string) *Hasher {
	h.password.Clear()
	h.password = secure.FromString(password)
	return h.touch()
}

// WithSecretKey takes ownership of key, like [Hasher.WithPassword].
func (h *Hasher) WithSecretKey(key []byte) *Hasher {
	return h.WithSecretKeyBytes(secure.New(key))
}

// WithSecretKeyString copies key into a buffer the Hasher owns.
func (h *Hasher) WithSecretKeyString(key string) *Hasher {
	return h.WithSecretKeyBytes(secure.FromString(key))
}

// WithSecretKeyBytes takes ownership of key, for instance one loaded with
// [SecretKeyFromEnv].
func (h *Hasher) WithSecretKeyBytes(key *secure.Bytes) *Hasher {
	if h.secretKey != key {
		h.secretKey.Clear()
	}
	h.secretKey = key
	return h.touch()
}

// WithAdditionalData sets the associated data mixed into the hash. It is not
// secret and is copied.
func (h *Hasher) WithAdditionalData(ad []byte) *Hasher {
	h.additionalData = bytes.Clone(ad)
	return h.touch()
}

// WithSalt sets a deterministic salt. Hashing with it fails with
// [ErrSaltNotRandom] unless [Hasher.OptOutOfRandomSalt] is set.
func (h *Hasher) WithSalt(salt []byte) *Hasher {
	h.salt = DeterministicSalt(salt)
	return h.touch()
}

// WithRandomSalt switches back to a random salt of length bytes.
func (h *Hasher) WithRandomSalt(length uint32) *Hasher {
	h.salt = RandomSalt(length)
	return h.touch()
}

// WithConfig replaces the whole configuration.
func (h *Hasher) WithConfig(c Config) *Hasher {
	h.config = c
	if err := c.Validate(); err != nil {
		h.warn(err)
	}
	return h.touch()
}

// WithEngine replaces the Argon2 engine.
func (h *Hasher) WithEngine(e engine.Engine) *Hasher {
	h.engine = e
	return h
}

// WithLogger sets the logger used for configuration warnings and engine
// faults. A nil logger restores [slog.Default].
func (h *Hasher) WithLogger(l *slog.Logger) *Hasher {
	if l == nil {
		l = slog.Default()
	}
	h.logger = l
	return h
}

// WithObserver registers o to receive an [Observation] per hash call.
func (h *Hasher) WithObserver(o Observer) *Hasher {
	h.observer = o
	return h
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuration
// ──────────────────────────────────────────────────────────────────────────────

// ConfigureBackend selects the implementation. Only [BackendGo] passes
// validation.
func (h *Hasher) ConfigureBackend(b Backend) *Hasher {
	h.warn(validateBackend(b))
	h.config.SetBackend(b)
	return h.touch()
}

// ConfigureHashLength sets the raw hash length in bytes; it must be at
// least 4.
func (h *Hasher) ConfigureHashLength(n uint32) *Hasher {
	h.warn(validateHashLength(n))
	h.config.SetHashLength(n)
	return h.touch()
}

// ConfigureIterations sets the number of passes; 0 is raised to 1.
func (h *Hasher) ConfigureIterations(n uint32) *Hasher {
	h.config.SetIterations(n)
	return h.touch()
}

// ConfigureLanes sets the degree of parallelism encoded in the hash; 0 is
// raised to 1.
func (h *Hasher) ConfigureLanes(n uint32) *Hasher {
	h.config.SetLanes(n)
	return h.touch()
}

// ConfigureMemorySize sets the memory cost in KiB. It must be a power of two
// and at least 8.
func (h *Hasher) ConfigureMemorySize(kib uint32) *Hasher {
	h.warn(validateMemorySize(kib))
	h.config.SetMemorySize(kib)
	return h.touch()
}

// ConfigureThreads bounds the goroutines used per hash; 0 is raised to 1.
// It never changes the output.
func (h *Hasher) ConfigureThreads(n uint32) *Hasher {
	h.config.SetThreads(n)
	return h.touch()
}

// ConfigureVariant selects [Argon2d], [Argon2i] or [Argon2id].
func (h *Hasher) ConfigureVariant(v Variant) *Hasher {
	h.config.SetVariant(v)
	return h.touch()
}

// ConfigureVersion sets the Argon2 version. Anything but the latest version
// logs an advisory and is still accepted, for compatibility with legacy
// hashes.
func (h *Hasher) ConfigureVersion(v Version) *Hasher {
	advise(h.logger, v)
	h.config.SetVersion(v)
	return h.touch()
}

// ConfigurePasswordClearing controls whether the password is zeroed after
// every hash. Default true.
func (h *Hasher) ConfigurePasswordClearing(b bool) *Hasher {
	h.config.SetPasswordClearing(b)
	return h.touch()
}

// ConfigureSecretKeyClearing controls whether the secret key is zeroed after
// every hash. Default false, so one key serves many hashes.
func (h *Hasher) ConfigureSecretKeyClearing(b bool) *Hasher {
	h.config.SetSecretKeyClearing(b)
	return h.touch()
}

// OptOutOfRandomSalt allows hashing with a deterministic salt.
func (h *Hasher) OptOutOfRandomSalt(b bool) *Hasher {
	h.config.SetOptOutOfRandomSalt(b)
	return h.touch()
}

// OptOutOfSecretKey allows hashing without a secret key.
func (h *Hasher) OptOutOfSecretKey(b bool) *Hasher {
	h.config.SetOptOutOfSecretKey(b)
	return h.touch()
}

// ──────────────────────────────────────────────────────────────────────────────
// Operations
// ──────────────────────────────────────────────────────────────────────────────

// Hash computes the hash and returns it in PHC string format.
func (h *Hasher) Hash() (string, error) {
	raw, err := h.HashRaw()
	if err != nil {
		return "", err
	}
	return raw.Encode(), nil
}

// HashRaw computes the hash and returns it in decoded form.
//
// A random salt is regenerated first. The configuration and inputs are then
// checked before the engine runs. The password, and the secret key if
// secret-key clearing is on, are zeroed on every return path.
func (h *Hasher) HashRaw() (HashRaw, error) {
	start := time.Now()
	raw, err := h.hashRaw()
	if err != nil && KindOf(err) == KindBug {
		h.logger.Error("argon2 hash failed", "variant", h.config.variant, "error", err)
	}
	if h.observer != nil {
		h.observer.Observe(Observation{
			Op:       OpHash,
			Variant:  h.config.variant,
			Duration: time.Since(start),
			Err:      err,
		})
	}
	return raw, err
}

func (h *Hasher) hashRaw() (HashRaw, error) {
	defer h.clearSecrets()

	if err := h.salt.refresh(); err != nil {
		return HashRaw{}, fmt.Errorf("%w: %w", ErrBug, err)
	}
	if err := h.config.Validate(); err != nil {
		return HashRaw{}, err
	}
	if h.password.IsEmpty() {
		return HashRaw{}, ErrPasswordMissing
	}
	if h.secretKey.IsEmpty() && !h.config.optOutOfSecretKey {
		return HashRaw{}, ErrSecretKeyMissing
	}
	if !h.salt.IsRandom() && !h.config.optOutOfRandomSalt {
		return HashRaw{}, ErrSaltNotRandom
	}

	c := h.config
	out, err := h.engine.HashRaw(c.params(), h.password.Bytes(), h.salt.b,
		h.secretKey.Bytes(), h.additionalData, c.hashLength)
	if err != nil {
		return HashRaw{}, hashFault(err)
	}

	h.state = StateHashed
	return HashRaw{
		variant:    c.variant,
		version:    c.version,
		memorySize: c.memorySize,
		iterations: c.iterations,
		lanes:      c.lanes,
		rawSalt:    h.salt.Bytes(),
		rawHash:    out,
	}, nil
}

// clearSecrets applies the clearing policy.
func (h *Hasher) clearSecrets() {
	if h.config.passwordClearing {
		h.password.Clear()
	}
	if h.config.secretKeyClearing {
		h.secretKey.Clear()
	}
}

// Clear zeroes the password, secret key and associated data regardless of
// the clearing policy. Call it when the Hasher is no longer needed.
func (h *Hasher) Clear() {
	h.password.Clear()
	h.secretKey.Clear()
	clear(h.additionalData)
	h.additionalData = nil
}

// Config returns a copy of the current configuration.
func (h *Hasher) Config() Config { return h.config }

// State returns the lifecycle state.
func (h *Hasher) State() State { return h.state }

// Salt returns the current salt. For a random salt it holds the bytes used by
// the last hash.
func (h *Hasher) Salt() Salt {
	return Salt{b: h.salt.Bytes(), random: h.salt.random}
}

func (h *Hasher) touch() *Hasher {
	h.state = StateConfigured
	return h
}

func (h *Hasher) warn(err error) {
	if err != nil {
		h.logger.Warn("argon2 configuration will fail validation", "error", err)
	}
}

// advise logs that v is not the latest version.
func advise(l *slog.Logger, v Version) {
	if v != engine.LatestVersion {
		l.Warn("argon2 version is not the latest; use it only to match legacy hashes",
			"version", v, "latest", engine.LatestVersion)
	}
}
