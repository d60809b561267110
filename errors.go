package workdist

import (
	"errors"
	"fmt"

	"github.com/gogpu/workdist/internal/parallel"
)

// Sentinel errors for the workdist package.
var (
	// ErrInvalidSize is returned for an image size outside [MinSize, MaxSize].
	ErrInvalidSize = errors.New("workdist: invalid size")

	// ErrInvalidWorkers is returned for a worker count outside [MinWorkers, MaxWorkers].
	ErrInvalidWorkers = errors.New("workdist: invalid worker count")

	// ErrInvalidModel is returned for a model outside the six known models.
	ErrInvalidModel = errors.New("workdist: invalid distribution model")

	// ErrInvalidImages is returned for an image count outside [MinImages, MaxImages].
	ErrInvalidImages = errors.New("workdist: invalid image count")

	// ErrNilKernel is returned when no kernel is supplied.
	ErrNilKernel = errors.New("workdist: nil kernel")

	// ErrSizeMismatch is returned when a buffer does not match the kernel or job size.
	ErrSizeMismatch = errors.New("workdist: size mismatch")

	// ErrInterrupted is returned when a pass was cancelled while joining workers.
	ErrInterrupted = parallel.ErrInterrupted
)

// WorkerError describes a worker whose loop ended with a panic.
type WorkerError = parallel.WorkerError

// CoverageError reports a pass that did not write every pixel exactly once.
type CoverageError = parallel.CoverageError

// RangeError is returned when a parameter is outside its valid range.
type RangeError struct {
	Param string
	Value int
	Min   int
	Max   int
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("workdist: %s %d is not in the range [%d, %d]", e.Param, e.Value, e.Min, e.Max)
}

// Unwrap returns the sentinel for the parameter.
func (e *RangeError) Unwrap() error { return e.Err }

func checkRange(param string, value, lo, hi int, sentinel error) error {
	if value < lo || value > hi {
		return &RangeError{Param: param, Value: value, Min: lo, Max: hi, Err: sentinel}
	}
	return nil
}
