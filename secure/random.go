package secure

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// Random returns a buffer of n cryptographically random bytes read from
// crypto/rand.
func Random(n int) (*Bytes, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	out := alloc(n)
	if _, err := io.ReadFull(rand.Reader, out.b); err != nil {
		out.Clear()
		return nil, fmt.Errorf("secure: failed to read %d random bytes: %w", n, err)
	}
	return out, nil
}

// RandomBase64 returns n cryptographically random bytes encoded with the
// standard base64 alphabet. It is a convenient way to mint a secret key that
// will live in an environment variable:
//
//	key, err := secure.RandomBase64(32)
//	// export ARGON2_SECRET_KEY=<key>
func RandomBase64(n int) (string, error) {
	b, err := Random(n)
	if err != nil {
		return "", err
	}
	defer b.Clear()
	return base64.StdEncoding.EncodeToString(b.Bytes()), nil
}

// encodings accepted by FromBase64, tried in order.
var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

// FromBase64 decodes encoded into a new page-locked buffer. The standard and
// URL-safe alphabets are accepted, padded or not.
func FromBase64(encoded string) (*Bytes, error) {
	src := []byte(encoded)
	defer wipe(src)
	// The unpadded length bound covers padded input too.
	tmp := make([]byte, base64.RawStdEncoding.DecodedLen(len(src)))
	defer wipe(tmp)

	var (
		n   int
		err error
	)
	for _, enc := range encodings {
		if n, err = enc.Decode(tmp, src); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	out := alloc(n)
	copy(out.b, tmp[:n])
	return out, nil
}
