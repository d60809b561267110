package parallel

import (
	"errors"
	"fmt"
)

// Sentinel errors for the parallel package.
var (
	// ErrUnknownModel is returned for a model code or name outside the known set.
	ErrUnknownModel = errors.New("parallel: unknown distribution model")

	// ErrWorkerStopped is returned when Run is called on a worker that already ran.
	ErrWorkerStopped = errors.New("parallel: worker stopped")

	// ErrInterrupted is returned when the context was cancelled while joining workers.
	ErrInterrupted = errors.New("parallel: render pass interrupted")

	// ErrInvalidPass is returned by NewPass for an unusable configuration.
	ErrInvalidPass = errors.New("parallel: invalid pass configuration")
)

// WorkerError describes a worker whose loop ended with a panic.
type WorkerError struct {
	Index int
	Model Model
	Unit  Unit
	Cause any
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("parallel: worker %d (%s) failed on %s %d: %v",
		e.Index, e.Model, e.Unit.Kind, e.Unit.Index, e.Cause)
}

// Unwrap returns the panic value when it is an error.
func (e *WorkerError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// CoverageError reports a pass whose writes did not cover the buffer exactly once.
type CoverageError struct {
	// Gaps is the number of indices never written.
	Gaps int

	// Duplicates is the number of indices written more than once.
	Duplicates int

	// FirstGap is the lowest unwritten index, or -1.
	FirstGap int

	// FirstDuplicate is the lowest index written more than once, or -1.
	FirstDuplicate int
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("parallel: disjoint-write check failed: %d gaps (first %d), %d duplicates (first %d)",
		e.Gaps, e.FirstGap, e.Duplicates, e.FirstDuplicate)
}
