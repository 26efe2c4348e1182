// Package hashing hashes and verifies passwords with Argon2.
//
// # Architecture
//
// A [Hasher] collects a password, an optional secret key, a salt and
// optional associated data, checks them against its [Config] and hands them
// to an [engine.Engine]. The result is a [HashRaw], which [HashRaw.Encode]
// turns into a PHC string. A [Verifier] goes the other way: it decodes a PHC
// string with [Decode] and asks the engine whether a password reproduces it.
//
// Both builders are small state machines ([State]) owned by one caller.
// Passwords and secret keys live in [secure.Bytes] buffers and are zeroed on
// every return path of Hash and Verify, according to the clearing policy.
//
// # Quick start
//
//	hash, err := hashing.NewHasher().
//	    WithSecretKey(key).
//	    WithPasswordString("P@ssw0rd").
//	    Hash()
//
//	ok, err := hashing.NewVerifier().
//	    WithHash(hash).
//	    WithSecretKey(key).
//	    WithPasswordString("P@ssw0rd").
//	    Verify()
//
// Hashing without a secret key needs [Hasher.OptOutOfSecretKey]; hashing with
// a fixed salt needs [Hasher.OptOutOfRandomSalt].
//
// # Defaults
//
// Argon2id, version 0x13, 4096 KiB of memory, 128 iterations, one lane and
// one thread per logical CPU, a 32-byte random salt and a 32-byte hash.
// [ConfigFromEnv] overlays ARGON2_* environment variables on these.
//
// # Hash format
//
//	$argon2id$v=19$m=4096,t=128,p=2$<base64-salt>$<base64-hash>
//
// Both base64 segments are unpadded standard base64. [HashRaw.EncodeBinary]
// offers a deterministic CBOR form of the same record.
//
// # Errors
//
// Every error wraps one of [ErrConfiguration], [ErrData], [ErrEncoding] or
// [ErrBug]; [KindOf] returns which.
package hashing
