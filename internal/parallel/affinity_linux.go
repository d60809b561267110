//go:build linux

package parallel

import (
	"errors"
	"runtime"

	"golang.org/x/sys/unix"
)

// maxCPUs is the number of CPUs a unix.CPUSet can describe.
const maxCPUs = 1024

var errNoAllowedCPU = errors.New("parallel: thread affinity mask is empty")

// pinThread locks the calling goroutine to its OS thread and restricts that
// thread to one CPU chosen from the worker index among the CPUs the process
// may run on.
//
// The thread is never unlocked: when the worker goroutine exits, the runtime
// terminates the thread instead of returning it, affinity and all, to the pool.
func pinThread(index int) error {
	runtime.LockOSThread()

	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil {
		return err
	}
	cpu, ok := pickCPU(&allowed, index)
	if !ok {
		return errNoAllowedCPU
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}

// pickCPU returns the (index mod n)-th CPU of the n CPUs set in allowed.
// Under a cpuset or taskset mask the ids need not start at zero or be dense.
func pickCPU(allowed *unix.CPUSet, index int) (int, bool) {
	n := allowed.Count()
	if n == 0 {
		return 0, false
	}
	want := index % n
	for cpu := range maxCPUs {
		if !allowed.IsSet(cpu) {
			continue
		}
		if want == 0 {
			return cpu, true
		}
		want--
	}
	return 0, false
}
