package hashing

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/hasbyte1/go-argon2/engine"
)

// b64 is unpadded standard base64 that rejects non-zero trailing bits.
var b64 = base64.RawStdEncoding.Strict()

// Encode serialises h in PHC string format:
//
//	$argon2id$v=19$m=4096,t=128,p=2$<salt_base64>$<hash_base64>
//
// The version is decimal and both base64 segments are unpadded.
func (h HashRaw) Encode() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		h.variant,
		uint32(h.version),
		h.memorySize,
		h.iterations,
		h.lanes,
		b64.EncodeToString(h.rawSalt),
		b64.EncodeToString(h.rawHash),
	)
}

// Decode parses a PHC string. It never runs the engine, and the salt and hash
// lengths of the result are exactly what the string carries.
//
// Faults: a structural problem wraps [ErrHashInvalid], a bad base64 segment
// wraps [ErrInvalidBase64] and a non-numeric parameter wraps
// [ErrInvalidNumber].
func Decode(encoded string) (HashRaw, error) {
	// The leading "$" produces an empty first element.
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return HashRaw{}, fmt.Errorf("%w: expected 5 segments, got %d", ErrHashInvalid, len(parts)-1)
	}

	variant, err := parseVariant(parts[1])
	if err != nil {
		return HashRaw{}, err
	}

	version, err := parseVersion(parts[2])
	if err != nil {
		return HashRaw{}, err
	}

	memory, iterations, lanes, err := parseParams(parts[3])
	if err != nil {
		return HashRaw{}, err
	}

	salt, err := decodeSegment("salt", parts[4])
	if err != nil {
		return HashRaw{}, err
	}
	hash, err := decodeSegment("hash", parts[5])
	if err != nil {
		return HashRaw{}, err
	}

	return HashRaw{
		variant:    variant,
		version:    version,
		memorySize: memory,
		iterations: iterations,
		lanes:      lanes,
		rawSalt:    salt,
		rawHash:    hash,
	}, nil
}

// DetectVariant reads the variant from the first segment of a PHC string
// without decoding the rest.
func DetectVariant(encoded string) (Variant, error) {
	rest, ok := strings.CutPrefix(encoded, "$")
	if !ok {
		return 0, fmt.Errorf("%w: missing leading '$'", ErrHashInvalid)
	}
	name, _, _ := strings.Cut(rest, "$")
	return parseVariant(name)
}

func parseVariant(s string) (Variant, error) {
	v, ok := ParseVariant(s)
	if !ok {
		return 0, fmt.Errorf("%w: unknown variant %q", ErrHashInvalid, s)
	}
	return v, nil
}

// ParseVariant maps "argon2d", "argon2i" or "argon2id" to its Variant.
func ParseVariant(s string) (Variant, bool) {
	return engine.ParseVariant(s)
}

// parseVersion parses "v=<decimal>".
func parseVersion(s string) (Version, error) {
	val, ok := strings.CutPrefix(s, "v=")
	if !ok {
		return 0, fmt.Errorf("%w: expected v=<version>, got %q", ErrHashInvalid, s)
	}
	n, err := parseUint(val)
	if err != nil {
		return 0, fmt.Errorf("%w: version: %v", ErrInvalidNumber, err)
	}
	if v := Version(n); v.Valid() {
		return v, nil
	}
	return 0, fmt.Errorf("%w: unknown version %d", ErrHashInvalid, n)
}

// parseParams parses "m=<uint>,t=<uint>,p=<uint>". All three keys are
// mandatory and must appear in that order.
func parseParams(s string) (memory, iterations, lanes uint32, err error) {
	pairs := strings.Split(s, ",")
	if len(pairs) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: expected m=,t=,p= parameters, got %q", ErrHashInvalid, s)
	}

	var out [3]uint32
	for i, key := range [3]string{"m", "t", "p"} {
		k, val, ok := strings.Cut(pairs[i], "=")
		if !ok || k != key {
			return 0, 0, 0, fmt.Errorf("%w: expected %s=<value>, got %q", ErrHashInvalid, key, pairs[i])
		}
		n, err := parseUint(val)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %s: %v", ErrInvalidNumber, key, err)
		}
		out[i] = n
	}
	return out[0], out[1], out[2], nil
}

func parseUint(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func decodeSegment(name, s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty %s segment", ErrHashInvalid, name)
	}
	// The decoder skips CR and LF, which a canonical string never contains.
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("%w: %s contains a line break", ErrInvalidBase64, name)
	}
	b, err := b64.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBase64, name, err)
	}
	return b, nil
}
