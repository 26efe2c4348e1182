// Package engine defines the boundary between the password-hashing façade and
// the Argon2 primitive, and ships the Go implementation of that primitive.
//
// The façade only ever talks to the [Engine] interface: raw bytes and
// [Params] in, raw bytes (or a match decision) out. Nothing about memory
// layout or scheduling leaks across it.
//
// # Native
//
// [Native] is the default engine. Requests that golang.org/x/crypto/argon2 can
// serve (Argon2i or Argon2id, version 0x13, no secret key, no associated data,
// at most 255 lanes) are delegated to it. Everything else (Argon2d, version
// 0x10, keyed hashes, associated data) runs on the portable implementation in
// this package, which follows RFC 9106 on top of golang.org/x/crypto/blake2b.
// Both paths produce identical output for the inputs they share.
//
// Within one computation the lanes of each slice are filled concurrently by at
// most Params.Threads goroutines. Threads never changes the output.
//
// https://www.rfc-editor.org/rfc/rfc9106.html
package engine
