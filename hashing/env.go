package hashing

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hasbyte1/go-argon2/secure"
)

// ConfigFromEnv returns [DefaultConfig] overlaid with environment variables.
//
// Env surface:
//   - ARGON2_BACKEND (go)
//   - ARGON2_VARIANT (argon2d, argon2i, argon2id)
//   - ARGON2_VERSION (16, 19, 0x10 or 0x13)
//   - ARGON2_HASH_LENGTH
//   - ARGON2_ITERATIONS
//   - ARGON2_LANES
//   - ARGON2_THREADS
//   - ARGON2_MEMORY_SIZE (KiB)
//   - ARGON2_PASSWORD_CLEARING (true/false)
//   - ARGON2_SECRET_KEY_CLEARING (true/false)
//   - ARGON2_OPT_OUT_OF_RANDOM_SALT (true/false)
//   - ARGON2_OPT_OUT_OF_SECRET_KEY (true/false)
//
// A malformed value fails with an error naming the variable. The result is
// validated before it is returned.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("ARGON2_BACKEND"); ok {
		b, ok := ParseBackend(strings.TrimSpace(v))
		if !ok {
			return Config{}, envError("ARGON2_BACKEND", fmt.Errorf("unknown backend %q", v))
		}
		cfg.SetBackend(b)
	}

	if v, ok := os.LookupEnv("ARGON2_VARIANT"); ok {
		variant, ok := ParseVariant(strings.ToLower(strings.TrimSpace(v)))
		if !ok {
			return Config{}, envError("ARGON2_VARIANT", fmt.Errorf("unknown variant %q", v))
		}
		cfg.SetVariant(variant)
	}

	if v, ok := os.LookupEnv("ARGON2_VERSION"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 0, 32)
		if err != nil || !Version(n).Valid() {
			return Config{}, envError("ARGON2_VERSION", fmt.Errorf("unknown version %q", v))
		}
		cfg.SetVersion(Version(n))
	}

	u32s := []struct {
		name string
		set  func(uint32)
	}{
		{"ARGON2_HASH_LENGTH", cfg.SetHashLength},
		{"ARGON2_ITERATIONS", cfg.SetIterations},
		{"ARGON2_LANES", cfg.SetLanes},
		{"ARGON2_THREADS", cfg.SetThreads},
		{"ARGON2_MEMORY_SIZE", cfg.SetMemorySize},
	}
	for _, e := range u32s {
		if v, ok := os.LookupEnv(e.name); ok {
			u, err := atou32(v)
			if err != nil {
				return Config{}, envError(e.name, err)
			}
			e.set(u)
		}
	}

	bools := []struct {
		name string
		set  func(bool)
	}{
		{"ARGON2_PASSWORD_CLEARING", cfg.SetPasswordClearing},
		{"ARGON2_SECRET_KEY_CLEARING", cfg.SetSecretKeyClearing},
		{"ARGON2_OPT_OUT_OF_RANDOM_SALT", cfg.SetOptOutOfRandomSalt},
		{"ARGON2_OPT_OUT_OF_SECRET_KEY", cfg.SetOptOutOfSecretKey},
	}
	for _, e := range bools {
		if v, ok := os.LookupEnv(e.name); ok {
			b, err := parseBool(v)
			if err != nil {
				return Config{}, envError(e.name, err)
			}
			e.set(b)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SecretKeyFromEnv reads a base64-encoded secret key (standard or URL-safe
// alphabet, padded or not) from the environment variable name.
func SecretKeyFromEnv(name string) (*secure.Bytes, error) {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrSecretKeyMissing, name)
	}
	key, err := secure.FromBase64(strings.TrimSpace(v))
	if err != nil {
		return nil, envError(name, err)
	}
	return key, nil
}

func envError(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, name, err)
}

func atou32(s string) (uint32, error) {
	u64, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an unsigned integer")
	}
	return uint32(u64), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean")
	}
}
