package hashing

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/hasbyte1/go-argon2/engine"
	"github.com/hasbyte1/go-argon2/secure"
)

// Verifier checks a password against a PHC hash string.
//
// Everything the computation needs except the thread count comes from the
// hash string; the Verifier's own configuration only supplies threads and
// the clearing policy. Like [Hasher] it is single-owner.
type Verifier struct {
	config   Config
	engine   engine.Engine
	logger   *slog.Logger
	observer Observer

	hash           string
	password       *secure.Bytes
	secretKey      *secure.Bytes
	additionalData []byte

	state State
}

// NewVerifier returns a Verifier with [DefaultConfig] and the [engine.Native]
// engine.
func NewVerifier() *Verifier {
	return &Verifier{
		config: DefaultConfig(),
		engine: engine.Native{},
		logger: slog.Default(),
	}
}

// WithHash sets the PHC string to verify against. It is not parsed until
// [Verifier.Verify].
func (v *Verifier) WithHash(hash string) *Verifier {
	v.hash = hash
	return v.touch()
}

// WithHashRaw sets the hash to verify against from its decoded form.
func (v *Verifier) WithHashRaw(raw HashRaw) *Verifier {
	return v.WithHash(raw.Encode())
}

// WithPassword takes ownership of password, like [Hasher.WithPassword].
func (v *Verifier) WithPassword(password []byte) *Verifier {
	v.password.Clear()
	v.password = secure.New(password)
	return v.touch()
}

// WithPasswordString sets the password from a copy of password.
func (v *Verifier) WithPasswordString(password string) *Verifier {
	v.password.Clear()
	v.password = secure.FromString(password)
	return v.touch()
}

// WithSecretKey takes ownership of key.
func (v *Verifier) WithSecretKey(key []byte) *Verifier {
	return v.WithSecretKeyBytes(secure.New(key))
}

// WithSecretKeyString sets the secret key from a copy of key.
func (v *Verifier) WithSecretKeyString(key string) *Verifier {
	return v.WithSecretKeyBytes(secure.FromString(key))
}

// WithSecretKeyBytes takes ownership of key.
func (v *Verifier) WithSecretKeyBytes(key *secure.Bytes) *Verifier {
	if v.secretKey != key {
		v.secretKey.Clear()
	}
	v.secretKey = key
	return v.touch()
}

// WithAdditionalData sets the associated data the hash was computed with.
func (v *Verifier) WithAdditionalData(ad []byte) *Verifier {
	v.additionalData = bytes.Clone(ad)
	return v.touch()
}

// WithConfig replaces the whole configuration.
func (v *Verifier) WithConfig(c Config) *Verifier {
	v.config = c
	return v.touch()
}

// WithEngine replaces the Argon2 engine.
func (v *Verifier) WithEngine(e engine.Engine) *Verifier {
	v.engine = e
	return v
}

// WithLogger sets the logger; nil restores [slog.Default].
func (v *Verifier) WithLogger(l *slog.Logger) *Verifier {
	if l == nil {
		l = slog.Default()
	}
	v.logger = l
	return v
}

// WithObserver registers o to receive an [Observation] per verify call.
func (v *Verifier) WithObserver(o Observer) *Verifier {
	v.observer = o
	return v
}

// ConfigureBackend selects the implementation. Only [BackendGo] is
// accepted by [Verifier.Verify].
func (v *Verifier) ConfigureBackend(b Backend) *Verifier {
	if err := validateBackend(b); err != nil {
		v.logger.Warn("argon2 configuration will fail validation", "error", err)
	}
	v.config.SetBackend(b)
	return v.touch()
}

// ConfigureThreads bounds the goroutines used per verification; 0 is raised
// to 1.
func (v *Verifier) ConfigureThreads(n uint32) *Verifier {
	v.config.SetThreads(n)
	return v.touch()
}

// ConfigurePasswordClearing controls whether the password is zeroed after
// every verify. Default true.
func (v *Verifier) ConfigurePasswordClearing(b bool) *Verifier {
	v.config.SetPasswordClearing(b)
	return v.touch()
}

// ConfigureSecretKeyClearing controls whether the secret key is zeroed after
// every verify. Default false.
func (v *Verifier) ConfigureSecretKeyClearing(b bool) *Verifier {
	v.config.SetSecretKeyClearing(b)
	return v.touch()
}

// Verify reports whether the password matches the hash string.
//
// A mismatch is (false, nil). Decode faults are returned unchanged, a missing
// hash string wraps [ErrHashMissing] and any engine fault wraps [ErrBug]. The
// password, and the secret key if secret-key clearing is on, are zeroed on
// every return path.
func (v *Verifier) Verify() (bool, error) {
	start := time.Now()
	variant, detectErr := DetectVariant(v.hash)
	ok, err := v.verify()
	if err != nil && KindOf(err) == KindBug {
		v.logger.Error("argon2 verify failed", "error", err)
	}
	if v.observer != nil {
		v.observer.Observe(Observation{
			Op:       OpVerify,
			Variant:        variant,
			VariantUnknown: detectErr != nil,
			Duration:       time.Since(start),
			Matched:        ok,
			Err:            err,
		})
	}
	return ok, err
}

func (v *Verifier) verify() (bool, error) {
	defer v.clearSecrets()

	if v.hash == "" {
		return false, ErrHashMissing
	}
	if err := validateBackend(v.config.backend); err != nil {
		return false, err
	}
	if err := validateThreads(v.config.threads); err != nil {
		return false, err
	}
	raw, err := Decode(v.hash)
	if err != nil {
		return false, err
	}
	if v.password.IsEmpty() {
		return false, ErrPasswordMissing
	}

	p := engine.Params{
		Variant:    raw.variant,
		Version:    raw.version,
		MemorySize: raw.memorySize,
		Iterations: raw.iterations,
		Lanes:      raw.lanes,
		Threads:    v.config.threads,
	}
	ok, err := v.engine.Verify(p, v.password.Bytes(), raw.rawSalt,
		v.secretKey.Bytes(), v.additionalData, raw.rawHash)
	if err != nil {
		return false, verifyFault(err)
	}

	v.state = StateVerified
	return ok, nil
}

func (v *Verifier) clearSecrets() {
	if v.config.passwordClearing {
		v.password.Clear()
	}
	if v.config.secretKeyClearing {
		v.secretKey.Clear()
	}
}

// Clear zeroes the password, secret key and associated data regardless of
// the clearing policy.
func (v *Verifier) Clear() {
	v.password.Clear()
	v.secretKey.Clear()
	clear(v.additionalData)
	v.additionalData = nil
}

// Config returns a copy of the current configuration.
func (v *Verifier) Config() Config { return v.config }

// State returns the lifecycle state.
func (v *Verifier) State() State { return v.state }

func (v *Verifier) touch() *Verifier {
	v.state = StateConfigured
	return v
}
