package hashing

import "time"

// Op names the operation an [Observation] describes.
type Op string

const (
	OpHash   Op = "hash"
	OpVerify Op = "verify"
)

// Observation describes one finished Hash, HashRaw or Verify call.
type Observation struct {
	Op      Op
	Variant Variant
	// VariantUnknown is set when Variant could not be read, as for a Verify
	// against a malformed hash string. Variant is then meaningless.
	VariantUnknown bool
	Duration       time.Duration
	// Matched is the verification result; always false for OpHash.
	Matched bool
	// Err is the returned error, if any.
	Err error
}

// Observer receives an Observation after every hash and verify call. It runs
// on the caller's goroutine and must not retain secrets; Observation carries
// none.
type Observer interface {
	Observe(Observation)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(Observation)

// Observe calls f(o).
func (f ObserverFunc) Observe(o Observation) { f(o) }
