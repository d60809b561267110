package workdist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/workdist/internal/parallel"
)

// Worker and image count limits.
const (
	MinWorkers = 1
	MaxWorkers = 32

	MinImages = 1
	MaxImages = 1000
)

// Scheduler runs render passes: it partitions an image among workers according
// to a Model, launches them, and waits for all of them to finish.
//
// A Scheduler holds only configuration and may run any number of passes,
// including concurrently on different buffers.
type Scheduler struct {
	opts schedulerOptions
}

// NewScheduler creates a scheduler with the given options.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Scheduler{opts: o}
}

// BlockSize returns the rows per block used by the block models.
func (s *Scheduler) BlockSize() int {
	return s.opts.blockSize
}

func (s *Scheduler) logger() *slog.Logger {
	if s.opts.logger != nil {
		return s.opts.logger
	}
	return Logger()
}

// PassStats describes a finished render pass.
type PassStats struct {
	Model     Model
	Workers   int
	Size      int
	BlockSize int

	// Units is the number of units each worker completed. A single-worker
	// pass has one entry counting rows.
	Units []int

	// Failed is the number of workers that stopped on an error.
	Failed int

	// Errors holds the worker failures.
	Errors []error

	// Stopped reports that Pass.Stop ended the pass before every unit was
	// rendered. The buffer is partial and no coverage check was made.
	Stopped bool

	Elapsed time.Duration
}

// TotalUnits returns the sum of Units.
func (st PassStats) TotalUnits() int {
	total := 0
	for _, n := range st.Units {
		total += n
	}
	return total
}

// Pass is a running render pass.
type Pass struct {
	inner   *parallel.Pass
	done    chan struct{}
	tracker *parallel.WriteTracker
	logger  *slog.Logger

	stats PassStats
	err   error
}

// run executes the pass on the calling goroutine and closes done.
func (p *Pass) run(ctx context.Context) {
	defer close(p.done)

	sw := NewStopwatch()
	res, err := p.inner.Run(ctx)

	p.stats.Units = res.Units
	p.stats.Failed = res.Failed
	p.stats.Errors = res.Errors
	p.stats.Stopped = res.Stopped
	p.stats.Elapsed = sw.Elapsed()
	p.err = err

	if err == nil && res.Failed == 0 && !res.Stopped && p.tracker != nil {
		if cerr := p.tracker.Verify(); cerr != nil {
			p.logger.Error("render pass wrote pixels unevenly", "model", p.stats.Model.String(), "err", cerr)
			p.err = cerr
		}
	}
}

// Stop asks every worker to finish its in-flight unit and return.
// Wait still has to be called to join the workers; it then reports
// PassStats.Stopped and a nil error.
func (p *Pass) Stop() {
	p.inner.Stop()
}

// Done is closed when every worker has returned.
func (p *Pass) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until every worker has returned and reports the pass outcome.
// It may be called any number of times.
func (p *Pass) Wait() (PassStats, error) {
	<-p.done
	return p.stats, p.err
}

// Start validates the request, builds the pass and launches it in the background.
//
// The buffer must not be read until Wait returns. Worker failures do not fail
// the pass; they are logged and reported in PassStats. An error is returned
// when ctx is cancelled during the pass (ErrInterrupted) or when write
// tracking finds a coverage defect (*CoverageError).
func (s *Scheduler) Start(ctx context.Context, buf *ImageBuffer, kernel Kernel, workers int, model Model) (*Pass, error) {
	p, err := s.prepare(buf, kernel, workers, model)
	if err != nil {
		return nil, err
	}
	go p.run(ctx)
	return p, nil
}

// RunPass renders one image with workers workers using model, and blocks
// until every worker has returned. With one worker the image is swept
// sequentially on the calling goroutine.
func (s *Scheduler) RunPass(ctx context.Context, buf *ImageBuffer, kernel Kernel, workers int, model Model) (PassStats, error) {
	p, err := s.prepare(buf, kernel, workers, model)
	if err != nil {
		return PassStats{}, err
	}
	p.run(ctx)
	return p.stats, p.err
}

// prepare validates the request and builds the pass context. Next-free
// queues are filled here, before any worker exists.
func (s *Scheduler) prepare(buf *ImageBuffer, kernel Kernel, workers int, model Model) (*Pass, error) {
	if err := s.validate(buf, kernel, workers, model); err != nil {
		return nil, err
	}

	size := buf.size
	data := buf.data
	var tracker *parallel.WriteTracker
	if s.opts.tracking {
		tracker = parallel.NewWriteTracker(buf.Len())
	}

	render := func(col, row int) {
		data[row*size+col] = kernel.ComputePixel(col, row)
	}
	if tracker != nil {
		render = func(col, row int) {
			i := row*size + col
			data[i] = kernel.ComputePixel(col, row)
			tracker.Record(i)
		}
	}

	log := s.logger()
	inner, err := parallel.NewPass(parallel.Config{
		Size:       size,
		Workers:    workers,
		Model:      model,
		BlockSize:  s.opts.blockSize,
		Render:     render,
		PinThreads: s.opts.pin,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	return &Pass{
		inner:   inner,
		done:    make(chan struct{}),
		tracker: tracker,
		logger:  log,
		stats: PassStats{
			Model:     model,
			Workers:   workers,
			Size:      size,
			BlockSize: inner.BlockSize(),
		},
	}, nil
}

func (s *Scheduler) validate(buf *ImageBuffer, kernel Kernel, workers int, model Model) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrSizeMismatch)
	}
	if err := checkRange("size", buf.size, MinSize, MaxSize, ErrInvalidSize); err != nil {
		return err
	}
	if err := checkRange("workers", workers, MinWorkers, MaxWorkers, ErrInvalidWorkers); err != nil {
		return err
	}
	if !model.Valid() {
		return &RangeError{Param: "model", Value: int(model), Min: int(RowStride), Max: int(NextFreeBlock), Err: ErrInvalidModel}
	}
	if kernel == nil {
		return ErrNilKernel
	}
	if sk, ok := kernel.(Sized); ok && sk.Size() != buf.size {
		return fmt.Errorf("%w: kernel size %d, buffer size %d", ErrSizeMismatch, sk.Size(), buf.size)
	}
	return nil
}

// Job describes a timed run of one or more images.
type Job struct {
	Size    int
	Images  int
	Workers int
	Model   Model
	Kernel  Kernel
}

// RenderResult is the outcome of Render.
type RenderResult struct {
	// Buffer holds the last image rendered.
	Buffer *ImageBuffer

	// Elapsed covers all passes, from the first launch to the last join.
	Elapsed time.Duration

	// Passes holds the statistics of each pass, in order.
	Passes []PassStats
}

// Render allocates one buffer and renders job.Images passes into it under a
// single stopwatch. It stops at the first pass that returns an error and
// returns the partial result together with that error. No pass is launched
// once ctx is done.
func (s *Scheduler) Render(ctx context.Context, job Job) (RenderResult, error) {
	if err := checkRange("images", job.Images, MinImages, MaxImages, ErrInvalidImages); err != nil {
		return RenderResult{}, err
	}
	buf, err := NewImageBuffer(job.Size)
	if err != nil {
		return RenderResult{}, err
	}

	log := s.logger()
	sw := NewStopwatch()
	res := RenderResult{Buffer: buf, Passes: make([]PassStats, 0, job.Images)}

	for i := range job.Images {
		if err := ctx.Err(); err != nil {
			res.Elapsed = sw.Elapsed()
			return res, fmt.Errorf("image %d of %d: %w: %w", i+1, job.Images, ErrInterrupted, err)
		}
		st, err := s.RunPass(ctx, buf, job.Kernel, job.Workers, job.Model)
		if st.Workers != 0 {
			res.Passes = append(res.Passes, st)
		}
		if err != nil {
			res.Elapsed = sw.Elapsed()
			return res, fmt.Errorf("image %d of %d: %w", i+1, job.Images, err)
		}
		log.Debug("image rendered", "image", i+1, "of", job.Images, "elapsed", st.Elapsed)
	}

	res.Elapsed = sw.Elapsed()
	return res, nil
}
