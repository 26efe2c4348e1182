package hashing

// State is the position of a [Hasher] or [Verifier] in its lifecycle.
//
// A Hasher moves Unconfigured → Configured → Hashed and a Verifier moves
// Unconfigured → Configured → Verified. Any builder call after Hashed or
// Verified moves back to Configured.
type State int

const (
	StateUnconfigured State = iota
	StateConfigured
	StateHashed
	StateVerified
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	case StateHashed:
		return "hashed"
	case StateVerified:
		return "verified"
	default:
		return "unknown"
	}
}
