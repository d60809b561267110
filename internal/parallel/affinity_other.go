//go:build !linux

package parallel

import (
	"errors"
	"runtime"
)

var errAffinityUnsupported = errors.New("parallel: cpu affinity not supported on " + runtime.GOOS)

// pinThread locks the calling goroutine to its OS thread. CPU affinity is only
// applied on Linux.
func pinThread(int) error {
	runtime.LockOSThread()
	return errAffinityUnsupported
}
