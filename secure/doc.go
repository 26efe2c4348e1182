// Package secure provides an owned byte buffer for sensitive material such as
// passwords, secret keys and salts.
//
// A [Bytes] value is the single owner of its backing array. It is never copied
// implicitly: handing a slice to [New] transfers ownership of that slice, and
// [Bytes.Clone] is the only way to obtain a second buffer with the same
// content. [Bytes.Clear] overwrites the backing array with zeros and marks the
// buffer empty.
//
// # Memory locking
//
// Buffers allocated by this package ([FromString], [Random], [FromBase64],
// [Bytes.Clone]) are page-locked with mlock(2) on platforms that support it so
// that their contents are not written to swap. Locking is best effort: when
// the process has exhausted RLIMIT_MEMLOCK the buffer is simply left unlocked.
// A buffer that becomes unreachable without being cleared is zeroed by a
// runtime cleanup.
//
// # Formatting
//
// Bytes implements [fmt.Stringer] and [fmt.GoStringer] and always formats as
// "[REDACTED]", so a buffer that ends up in a log line leaks nothing.
package secure
