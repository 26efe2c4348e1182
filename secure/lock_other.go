//go:build !(linux || darwin || freebsd)

package secure

import "errors"

var errLockUnsupported = errors.New("secure: memory locking is not supported on this platform")

func lock([]byte) error   { return errLockUnsupported }
func unlock([]byte) error { return nil }
