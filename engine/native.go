package engine

import (
	"crypto/subtle"
	"math"

	"golang.org/x/crypto/argon2"
)

const (
	minOutputLength = 4
	minSaltLength   = 8
	maxLanes        = 1<<24 - 1
	maxThreads      = 1<<24 - 1
)

// Native is the Go Argon2 engine. The zero value is ready to use and safe for
// concurrent use; every call allocates its own working memory.
type Native struct{}

var _ Engine = Native{}

// HashRaw implements [Engine].
func (Native) HashRaw(p Params, password, salt, secret, ad []byte, outLen uint32) ([]byte, error) {
	if c := validate(p, password, salt, secret, ad, outLen); c != CodeOK {
		return nil, fault(c)
	}
	return derive(p, password, salt, secret, ad, outLen), nil
}

// Verify implements [Engine].
func (n Native) Verify(p Params, password, salt, secret, ad, expected []byte) (bool, error) {
	switch c := n.verify(p, password, salt, secret, ad, expected); c {
	case CodeOK:
		return true, nil
	case CodeVerifyMismatch:
		return false, nil
	default:
		return false, fault(c)
	}
}

func (Native) verify(p Params, password, salt, secret, ad, expected []byte) Code {
	if uint64(len(expected)) > math.MaxUint32 {
		return CodeOutputTooLong
	}
	outLen := uint32(len(expected))
	if c := validate(p, password, salt, secret, ad, outLen); c != CodeOK {
		return c
	}

	tag := derive(p, password, salt, secret, ad, outLen)
	defer clear(tag)
	if subtle.ConstantTimeCompare(tag, expected) != 1 {
		return CodeVerifyMismatch
	}
	return CodeOK
}

// validate applies the input checks of the reference implementation, in its
// order, before any memory is allocated.
func validate(p Params, password, salt, secret, ad []byte, outLen uint32) Code {
	switch {
	case outLen < minOutputLength:
		return CodeOutputTooShort
	case uint64(len(password)) > math.MaxUint32:
		return CodePasswordTooLong
	case len(salt) < minSaltLength:
		return CodeSaltTooShort
	case uint64(len(salt)) > math.MaxUint32:
		return CodeSaltTooLong
	case uint64(len(secret)) > math.MaxUint32:
		return CodeSecretTooLong
	case uint64(len(ad)) > math.MaxUint32:
		return CodeAdditionalDataTooLong
	case p.Iterations < 1:
		return CodeTimeTooSmall
	case p.Lanes < 1:
		return CodeLanesTooFew
	case p.Lanes > maxLanes:
		return CodeLanesTooMany
	case p.Threads < 1:
		return CodeThreadsTooFew
	case p.Threads > maxThreads:
		return CodeThreadsTooMany
	case uint64(p.MemorySize) < 2*syncPoints*uint64(p.Lanes):
		return CodeMemoryTooLittle
	case uint64(p.MemorySize)*blockSize > math.MaxInt:
		return CodeMemoryTooMuch
	case !p.Variant.Valid():
		return CodeIncorrectType
	case !p.Version.Valid():
		return CodeIncorrectParameter
	}
	return CodeOK
}

// derive computes the tag, delegating to x/crypto when it supports the
// request.
func derive(p Params, password, salt, secret, ad []byte, outLen uint32) []byte {
	if upstream(p, secret, ad) {
		lanes := uint8(p.Lanes)
		if p.Variant == Argon2i {
			return argon2.Key(password, salt, p.Iterations, p.MemorySize, lanes, outLen)
		}
		return argon2.IDKey(password, salt, p.Iterations, p.MemorySize, lanes, outLen)
	}
	return deriveKey(p, password, salt, secret, ad, outLen)
}

// upstream reports whether golang.org/x/crypto/argon2 can compute p. It only
// implements Argon2i and Argon2id at version 0x13 without a secret or
// associated data, and takes the lane count as a uint8.
func upstream(p Params, secret, ad []byte) bool {
	return (p.Variant == Argon2i || p.Variant == Argon2id) &&
		p.Version == Version13 &&
		len(secret) == 0 && len(ad) == 0 &&
		p.Lanes <= math.MaxUint8
}
