package secure

import "errors"

var (
	// ErrInvalidBase64 is returned by [FromBase64] when the input is not valid
	// standard or URL-safe base64.
	ErrInvalidBase64 = errors.New("secure: invalid base64 input")

	// ErrInvalidLength is returned when a negative length is requested.
	ErrInvalidLength = errors.New("secure: length must not be negative")
)
