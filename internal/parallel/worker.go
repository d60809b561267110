package parallel

import (
	"sync/atomic"
)

// RenderFunc computes one pixel and stores it in the pass buffer.
type RenderFunc func(col, row int)

// State is a worker lifecycle state.
type State int32

const (
	// StateCreated is the state of a worker that has not started.
	StateCreated State = iota

	// StateRunning is the state of a worker inside Run, claiming or computing units.
	StateRunning

	// StateStopped is terminal: the worker ran out of work, was stopped, or failed.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Worker is one unit of sequential execution in a render pass.
//
// A worker repeatedly asks its Strategy for a unit, renders every pixel of it,
// and checks its stop flag before claiming the next one. It runs at most once.
type Worker struct {
	index     int
	workers   int
	size      int
	blockSize int
	strategy  Strategy
	render    RenderFunc

	// cursor is the next stride id; owned by the worker goroutine.
	cursor int

	// units is the number of units completed; read it after Run returns.
	units int

	// current is the unit being rendered, kept for failure reports.
	current Unit

	stop  atomic.Bool
	state atomic.Int32
}

// NewWorker creates a worker for slot index of workers.
func NewWorker(index, workers, size, blockSize int, strategy Strategy, render RenderFunc) *Worker {
	return &Worker{
		index:     index,
		workers:   workers,
		size:      size,
		blockSize: blockSize,
		strategy:  strategy,
		render:    render,
		cursor:    index,
	}
}

// Index returns the worker's zero-based slot.
func (w *Worker) Index() int { return w.index }

// Workers returns the number of workers in the pass.
func (w *Worker) Workers() int { return w.workers }

// State returns the current lifecycle state.
func (w *Worker) State() State { return State(w.state.Load()) }

// Units returns the number of units the worker completed.
// The value is stable once Run has returned.
func (w *Worker) Units() int { return w.units }

// Stop asks the worker to finish its in-flight unit and then return.
// Visibility is eventual; one more unit may be rendered after Stop.
func (w *Worker) Stop() { w.stop.Store(true) }

// StopRequested reports whether Stop has been called.
func (w *Worker) StopRequested() bool { return w.stop.Load() }

// Run executes the worker loop until the strategy is exhausted or Stop is observed.
// A panic inside the render function is recovered and returned as *WorkerError.
// Calling Run a second time returns ErrWorkerStopped.
func (w *Worker) Run() (err error) {
	if !w.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return ErrWorkerStopped
	}
	defer w.state.Store(int32(StateStopped))
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerError{
				Index: w.index,
				Model: w.strategy.Model(),
				Unit:  w.current,
				Cause: r,
			}
		}
	}()

	// The flag is checked before claiming so a stop never drops a polled id.
	for !w.stop.Load() {
		u, ok := w.strategy.Next(w)
		if !ok {
			return nil
		}
		w.current = u
		u.Each(w.size, w.blockSize, w.render)
		w.units++
	}
	return nil
}
