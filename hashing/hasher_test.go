package hashing_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/hasbyte1/go-argon2/engine"
	"github.com/hasbyte1/go-argon2/hashing"
)

var quiet = slog.New(slog.DiscardHandler)

// fastHasher returns a Hasher with minimal cost parameters for unit tests.
// These are intentionally weak; do NOT use them in production.
func fastHasher() *hashing.Hasher {
	return hashing.NewHasher().
		WithLogger(quiet).
		ConfigureMemorySize(32).
		ConfigureIterations(1).
		ConfigureLanes(2).
		ConfigureThreads(2).
		ConfigureHashLength(16)
}

func fastVerifier(hash string) *hashing.Verifier {
	return hashing.NewVerifier().WithLogger(quiet).WithHash(hash)
}

// zeroConfig passes every check except iterations, lanes and threads, which
// the setters never leave at 0.
func zeroConfig() hashing.Config {
	var c hashing.Config
	c.SetHashLength(32)
	c.SetMemorySize(64)
	c.SetVersion(hashing.Version13)
	return c
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// faultyEngine fails every call with a fixed code, or panics when code is 0.
type faultyEngine struct {
	code  engine.Code
	calls *int
}

func (f faultyEngine) HashRaw(engine.Params, []byte, []byte, []byte, []byte, uint32) ([]byte, error) {
	if f.calls != nil {
		*f.calls++
	}
	if f.code == engine.CodeOK {
		panic("engine exploded")
	}
	return nil, &engine.Fault{Code: f.code}
}

func (f faultyEngine) Verify(engine.Params, []byte, []byte, []byte, []byte, []byte) (bool, error) {
	if f.calls != nil {
		*f.calls++
	}
	return false, &engine.Fault{Code: f.code}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hash then verify
// ──────────────────────────────────────────────────────────────────────────────

func TestHasher_HashThenVerify(t *testing.T) {
	for _, variant := range []hashing.Variant{hashing.Argon2d, hashing.Argon2i, hashing.Argon2id} {
		for _, version := range []hashing.Version{hashing.Version10, hashing.Version13} {
			t.Run(variant.String()+"/"+version.String(), func(t *testing.T) {
				hash, err := fastHasher().
					ConfigureVariant(variant).
					ConfigureVersion(version).
					WithSecretKeyString("pepper").
					WithAdditionalData([]byte("user-42")).
					WithPasswordString("P@ssw0rd").
					Hash()
				if err != nil {
					t.Fatalf("Hash: %v", err)
				}

				ok, err := fastVerifier(hash).
					WithSecretKeyString("pepper").
					WithAdditionalData([]byte("user-42")).
					WithPasswordString("P@ssw0rd").
					Verify()
				if err != nil || !ok {
					t.Fatalf("Verify = %v, %v; want true", ok, err)
				}
			})
		}
	}
}

func TestHasher_NegativeVerify(t *testing.T) {
	hash, err := fastHasher().WithSecretKeyString("pepper").WithPasswordString("P@ssw0rd").Hash()
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	for _, candidate := range []string{"p@ssw0rd", "P@ssw0rD", "P@ssw0r", "P@ssw0rd "} {
		ok, err := fastVerifier(hash).WithSecretKeyString("pepper").WithPasswordString(candidate).Verify()
		if err != nil {
			t.Errorf("Verify(%q): unexpected error %v", candidate, err)
		}
		if ok {
			t.Errorf("Verify(%q) = true", candidate)
		}
	}
}

func TestHasher_RandomSaltFreshEveryCall(t *testing.T) {
	h := fastHasher().OptOutOfSecretKey(true).ConfigurePasswordClearing(false).WithPasswordString("same")
	a, err := h.HashRaw()
	if err != nil {
		t.Fatalf("HashRaw: %v", err)
	}
	b, err := h.HashRaw()
	if err != nil {
		t.Fatalf("HashRaw: %v", err)
	}
	if bytes.Equal(a.RawSaltBytes(), b.RawSaltBytes()) {
		t.Error("random salt was reused")
	}
	if a.Equal(b) {
		t.Error("two hashes of the same password should differ")
	}
	if s := h.Salt(); !s.IsRandom() || !bytes.Equal(s.Bytes(), b.RawSaltBytes()) {
		t.Error("Salt should report the random salt used by the last hash")
	}
	if len(a.RawSaltBytes()) != int(hashing.DefaultSaltLength) {
		t.Errorf("salt length = %d, want %d", len(a.RawSaltBytes()), hashing.DefaultSaltLength)
	}
	if len(a.RawHashBytes()) != 16 {
		t.Errorf("hash length = %d, want 16", len(a.RawHashBytes()))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validation
// ──────────────────────────────────────────────────────────────────────────────

func TestHasher_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		h    *hashing.Hasher
		want error
	}{
		{"memory 10", fastHasher().ConfigureMemorySize(10), hashing.ErrMemorySizeNotPowerOfTwo},
		{"memory 4", fastHasher().ConfigureMemorySize(4), hashing.ErrMemorySizeTooSmall},
		{"hash length 2", fastHasher().ConfigureHashLength(2), hashing.ErrHashLengthTooShort},
		{"backend", fastHasher().ConfigureBackend(hashing.Backend(7)), hashing.ErrUnsupportedBackend},
		{"variant", fastHasher().ConfigureVariant(hashing.Variant(9)), hashing.ErrUnsupportedVariant},
		{"zero-value config", fastHasher().WithConfig(zeroConfig()), hashing.ErrIterationsTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			_, err := tt.h.
				WithEngine(faultyEngine{code: engine.CodeOK, calls: &calls}).
				OptOutOfSecretKey(true).
				WithPasswordString("password").
				Hash()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, hashing.ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
			if calls != 0 {
				t.Error("engine was called with an invalid configuration")
			}
		})
	}
}

func TestHasher_MissingInputs(t *testing.T) {
	tests := []struct {
		name string
		h    *hashing.Hasher
		want error
	}{
		{"no password", fastHasher().OptOutOfSecretKey(true), hashing.ErrPasswordMissing},
		{"empty password", fastHasher().OptOutOfSecretKey(true).WithPassword([]byte{}), hashing.ErrPasswordMissing},
		{"no secret key", fastHasher().WithPasswordString("password"), hashing.ErrSecretKeyMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.h.Hash()
			if !errors.Is(err, tt.want) || !errors.Is(err, hashing.ErrData) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHasher_DeterministicSaltGuard(t *testing.T) {
	salt := []byte("somesalt")

	_, err := fastHasher().OptOutOfSecretKey(true).WithSalt(salt).WithPasswordString("password").HashRaw()
	if !errors.Is(err, hashing.ErrSaltNotRandom) || !errors.Is(err, hashing.ErrData) {
		t.Fatalf("err = %v, want ErrSaltNotRandom", err)
	}

	raw, err := fastHasher().
		OptOutOfSecretKey(true).
		OptOutOfRandomSalt(true).
		WithSalt(salt).
		WithPasswordString("password").
		HashRaw()
	if err != nil {
		t.Fatalf("HashRaw: %v", err)
	}
	if !bytes.Equal(raw.RawSaltBytes(), salt) {
		t.Errorf("salt = %q, want %q", raw.RawSaltBytes(), salt)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Secret clearing
// ──────────────────────────────────────────────────────────────────────────────

func TestHasher_ClearingDefaults(t *testing.T) {
	password := []byte("P@ssw0rd")
	key := []byte("secret-key")
	h := fastHasher().WithSecretKey(key).WithPassword(password)

	if _, err := h.Hash(); err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !allZero(password) {
		t.Errorf("password not cleared: %q", password)
	}
	if string(key) != "secret-key" {
		t.Errorf("secret key changed: %q", key)
	}

	// The password must be supplied again; the key is still there.
	if _, err := h.Hash(); !errors.Is(err, hashing.ErrPasswordMissing) {
		t.Fatalf("second Hash err = %v, want ErrPasswordMissing", err)
	}
	if _, err := h.WithPasswordString("another").Hash(); err != nil {
		t.Fatalf("Hash with reused key: %v", err)
	}
}

func TestHasher_SecretKeyClearing(t *testing.T) {
	key := []byte("secret-key")
	h := fastHasher().ConfigureSecretKeyClearing(true).WithSecretKey(key).WithPasswordString("pw")
	if _, err := h.Hash(); err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !allZero(key) {
		t.Errorf("secret key not cleared: %q", key)
	}
	if _, err := h.WithPasswordString("pw").Hash(); !errors.Is(err, hashing.ErrSecretKeyMissing) {
		t.Errorf("err = %v, want ErrSecretKeyMissing", err)
	}
}

func TestHasher_PasswordClearingOff(t *testing.T) {
	password := []byte("P@ssw0rd")
	h := fastHasher().ConfigurePasswordClearing(false).OptOutOfSecretKey(true).WithPassword(password)
	if _, err := h.Hash(); err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if string(password) != "P@ssw0rd" {
		t.Errorf("password cleared with clearing off: %q", password)
	}
}

func TestHasher_ClearsOnFailure(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		password := []byte("P@ssw0rd")
		_, _ = fastHasher().ConfigureHashLength(2).OptOutOfSecretKey(true).WithPassword(password).Hash()
		if !allZero(password) {
			t.Error("password not cleared after a validation fault")
		}
	})

	t.Run("engine fault", func(t *testing.T) {
		password := []byte("P@ssw0rd")
		key := []byte("secret-key")
		_, err := fastHasher().
			ConfigureSecretKeyClearing(true).
			WithEngine(faultyEngine{code: -99}).
			WithSecretKey(key).
			WithPassword(password).
			Hash()
		if !errors.Is(err, hashing.ErrBug) {
			t.Errorf("err = %v, want ErrBug", err)
		}
		if !allZero(password) || !allZero(key) {
			t.Error("secrets not cleared after an engine fault")
		}
	})

	t.Run("panic", func(t *testing.T) {
		password := []byte("P@ssw0rd")
		func() {
			defer func() { _ = recover() }()
			_, _ = fastHasher().
				WithEngine(faultyEngine{code: engine.CodeOK}).
				OptOutOfSecretKey(true).
				WithPassword(password).
				Hash()
		}()
		if !allZero(password) {
			t.Error("password not cleared when the engine panicked")
		}
	})
}

func TestHasher_EngineFaultMapping(t *testing.T) {
	tests := []struct {
		code engine.Code
		want error
	}{
		{engine.CodeMemoryTooLittle, hashing.ErrConfiguration},
		{engine.CodeLanesTooMany, hashing.ErrConfiguration},
		{engine.CodeSaltTooShort, hashing.ErrData},
		{engine.CodeOutputTooShort, hashing.ErrData},
		{engine.CodeVerifyMismatch, hashing.ErrBug},
		{-99, hashing.ErrBug},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			_, err := fastHasher().
				WithEngine(faultyEngine{code: tt.code}).
				OptOutOfSecretKey(true).
				WithPasswordString("password").
				Hash()
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if code, ok := engine.CodeOf(err); !ok || code != tt.code {
				t.Errorf("engine code lost: %v", err)
			}
		})
	}
}

func TestHasher_ShortSaltIsDataError(t *testing.T) {
	_, err := fastHasher().
		OptOutOfSecretKey(true).
		OptOutOfRandomSalt(true).
		WithSalt([]byte("short")).
		WithPasswordString("password").
		Hash()
	if !errors.Is(err, hashing.ErrData) {
		t.Errorf("err = %v, want ErrData", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// State and hooks
// ──────────────────────────────────────────────────────────────────────────────

// ──────────────────────────────────────────────────────────────────────────────
// Advisories
// ──────────────────────────────────────────────────────────────────────────────

func TestHasher_ConfigurationWarnings(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*hashing.Hasher) *hashing.Hasher
		want      string // "" means nothing is logged
	}{
		{"legacy version", func(h *hashing.Hasher) *hashing.Hasher { return h.ConfigureVersion(hashing.Version10) }, "argon2 version is not the latest"},
		{"latest version", func(h *hashing.Hasher) *hashing.Hasher { return h.ConfigureVersion(hashing.Version13) }, ""},
		{"memory 10", func(h *hashing.Hasher) *hashing.Hasher { return h.ConfigureMemorySize(10) }, "argon2 configuration will fail validation"},
		{"memory 64", func(h *hashing.Hasher) *hashing.Hasher { return h.ConfigureMemorySize(64) }, ""},
		{"hash length 2", func(h *hashing.Hasher) *hashing.Hasher { return h.ConfigureHashLength(2) }, "argon2 configuration will fail validation"},
		{"backend", func(h *hashing.Hasher) *hashing.Hasher { return h.ConfigureBackend(hashing.Backend(5)) }, "argon2 configuration will fail validation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := fastHasher().WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))
			tt.configure(h)

			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("unexpected log output: %s", out)
				}
				return
			}
			if !strings.Contains(out, "level=WARN") || !strings.Contains(out, tt.want) {
				t.Errorf("log = %q, want a WARN containing %q", out, tt.want)
			}
		})
	}
}

func TestHasher_LegacyVersionStillHashes(t *testing.T) {
	var buf bytes.Buffer
	hash, err := fastHasher().
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))).
		ConfigureVersion(hashing.Version10).
		OptOutOfSecretKey(true).
		WithPasswordString("P@ssw0rd").
		Hash()
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=16$") {
		t.Errorf("hash = %q, want a v=16 string", hash)
	}
	if n := strings.Count(buf.String(), "level=WARN"); n != 1 {
		t.Errorf("WARN lines = %d, want 1:\n%s", n, buf.String())
	}
}

func TestHasher_State(t *testing.T) {
	h := hashing.NewHasher()
	if h.State() != hashing.StateUnconfigured {
		t.Fatalf("initial state = %s", h.State())
	}
	h = fastHasher().OptOutOfSecretKey(true).WithPasswordString("pw")
	if h.State() != hashing.StateConfigured {
		t.Fatalf("state = %s, want configured", h.State())
	}
	if _, err := h.Hash(); err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h.State() != hashing.StateHashed {
		t.Fatalf("state = %s, want hashed", h.State())
	}
	if _, err := h.Hash(); err == nil {
		t.Fatal("expected an error without a new password")
	}
	if h.State() != hashing.StateHashed {
		t.Errorf("failed hash changed the state to %s", h.State())
	}
	h.WithPasswordString("pw")
	if h.State() != hashing.StateConfigured {
		t.Errorf("state = %s, want configured", h.State())
	}
}

func TestHasher_Observer(t *testing.T) {
	var got []hashing.Observation
	h := fastHasher().
		WithObserver(hashing.ObserverFunc(func(o hashing.Observation) { got = append(got, o) })).
		OptOutOfSecretKey(true).
		WithPasswordString("pw")
	_, _ = h.Hash()
	_, _ = h.Hash()

	if len(got) != 2 {
		t.Fatalf("observations = %d, want 2", len(got))
	}
	if got[0].Op != hashing.OpHash || got[0].Variant != hashing.Argon2id || got[0].Err != nil {
		t.Errorf("first observation = %+v", got[0])
	}
	if !errors.Is(got[1].Err, hashing.ErrPasswordMissing) {
		t.Errorf("second observation err = %v", got[1].Err)
	}
}

func TestHasher_Clear(t *testing.T) {
	password, key := []byte("pw"), []byte("key")
	h := fastHasher().ConfigurePasswordClearing(false).WithSecretKey(key).WithPassword(password)
	h.Clear()
	if !allZero(password) || !allZero(key) {
		t.Error("Clear left secrets behind")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reference vector
// ──────────────────────────────────────────────────────────────────────────────

func TestHasher_ReferenceString(t *testing.T) {
	if testing.Short() {
		t.Skip("8 MiB × 256 passes")
	}
	const want = "$argon2id$v=19$m=8192,t=256,p=2$c29tZXNhbHQ$TyX+9AspmkeMGLJRQdJozQ"

	got, err := hashing.NewHasher().
		WithLogger(quiet).
		ConfigureHashLength(16).
		ConfigureIterations(256).
		ConfigureLanes(2).
		ConfigureMemorySize(8192).
		ConfigureThreads(2).
		ConfigureVariant(hashing.Argon2id).
		ConfigureVersion(hashing.Version13).
		OptOutOfRandomSalt(true).
		OptOutOfSecretKey(true).
		WithSalt([]byte("somesalt")).
		WithPasswordString("P@ssw0rd").
		Hash()
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if got != want {
		t.Errorf("Hash = %s\nwant   %s", got, want)
	}

	ok, err := fastVerifier(want).WithPasswordString("P@ssw0rd").Verify()
	if err != nil || !ok {
		t.Errorf("Verify(reference) = %v, %v", ok, err)
	}
}
