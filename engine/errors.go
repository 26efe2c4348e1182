package engine

import (
	"errors"
	"fmt"
)

// Code is a numeric engine result. The values follow the reference Argon2
// library so that codes read the same across implementations.
type Code int

// Result codes. Only the codes this package can produce are listed.
const (
	CodeOK                    Code = 0
	CodeOutputTooShort        Code = -2
	CodeOutputTooLong         Code = -3
	CodePasswordTooLong       Code = -5
	CodeSaltTooShort          Code = -6
	CodeSaltTooLong           Code = -7
	CodeAdditionalDataTooLong Code = -9
	CodeSecretTooLong         Code = -11
	CodeTimeTooSmall          Code = -12
	CodeMemoryTooLittle       Code = -14
	CodeMemoryTooMuch         Code = -15
	CodeLanesTooFew           Code = -16
	CodeLanesTooMany          Code = -17
	CodeIncorrectParameter    Code = -25
	CodeIncorrectType         Code = -26
	CodeThreadsTooFew         Code = -28
	CodeThreadsTooMany        Code = -29
	CodeVerifyMismatch        Code = -35
)

var codeText = map[Code]string{
	CodeOK:                    "ok",
	CodeOutputTooShort:        "output is too short",
	CodeOutputTooLong:         "output is too long",
	CodePasswordTooLong:       "password is too long",
	CodeSaltTooShort:          "salt is too short",
	CodeSaltTooLong:           "salt is too long",
	CodeAdditionalDataTooLong: "associated data is too long",
	CodeSecretTooLong:         "secret is too long",
	CodeTimeTooSmall:          "time cost is too small",
	CodeMemoryTooLittle:       "memory cost is too small",
	CodeMemoryTooMuch:         "memory cost is too large",
	CodeLanesTooFew:           "too few lanes",
	CodeLanesTooMany:          "too many lanes",
	CodeIncorrectParameter:    "version is not supported",
	CodeIncorrectType:         "variant is not supported",
	CodeThreadsTooFew:         "not enough threads",
	CodeThreadsTooMany:        "too many threads",
	CodeVerifyMismatch:        "the password does not match the supplied hash",
}

// String returns a short human-readable description of c.
func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown engine code %d", int(c))
}

// IsParameter reports whether c rejects a cost or identity parameter
// (variant, version, memory, time, lanes, threads).
func (c Code) IsParameter() bool {
	switch c {
	case CodeTimeTooSmall, CodeMemoryTooLittle, CodeMemoryTooMuch,
		CodeLanesTooFew, CodeLanesTooMany, CodeThreadsTooFew, CodeThreadsTooMany,
		CodeIncorrectParameter, CodeIncorrectType:
		return true
	}
	return false
}

// IsInput reports whether c rejects the length of a caller-supplied input
// (output length, password, salt, secret, associated data).
func (c Code) IsInput() bool {
	switch c {
	case CodeOutputTooShort, CodeOutputTooLong, CodePasswordTooLong,
		CodeSaltTooShort, CodeSaltTooLong, CodeSecretTooLong, CodeAdditionalDataTooLong:
		return true
	}
	return false
}

// Fault is the error returned by an engine for any result other than success
// or a verification mismatch.
type Fault struct {
	Code Code
}

// Error returns the code name and number.
func (f *Fault) Error() string {
	return fmt.Sprintf("engine: %s (code %d)", f.Code, int(f.Code))
}

// Is makes errors.Is match any *Fault carrying the same code.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	return ok && t.Code == f.Code
}

func fault(c Code) error { return &Fault{Code: c} }

// CodeOf extracts the engine code from err. It returns CodeOK for nil and
// false when err carries no engine code.
func CodeOf(err error) (Code, bool) {
	if err == nil {
		return CodeOK, true
	}
	var f *Fault
	if errors.As(err, &f) {
		return f.Code, true
	}
	return 0, false
}
