package parallel

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Config describes one render pass.
type Config struct {
	// Size is the image width and height in pixels.
	Size int

	// Workers is the number of workers. One worker means a sequential sweep.
	Workers int

	// Model selects the distribution strategy. Ignored when Workers is 1.
	Model Model

	// BlockSize is the number of rows per block unit. Zero means DefaultBlockSize.
	BlockSize int

	// Render computes and stores one pixel. It must be safe for concurrent calls
	// on distinct pixels.
	Render RenderFunc

	// PinThreads locks each worker goroutine to its own OS thread and sets its
	// CPU affinity where the platform supports it.
	PinThreads bool

	// Logger receives pass diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Result summarizes a finished pass.
type Result struct {
	// Units holds the number of units each worker completed, by worker index.
	// A sequential pass reports one entry counting rows.
	Units []int

	// Failed is the number of workers whose loop ended with an error.
	Failed int

	// Errors holds the worker failures, in worker order.
	Errors []error

	// Stopped reports that the pass was stopped before every unit was
	// rendered. The image is then partial by request.
	Stopped bool
}

// TotalUnits returns the sum of Units.
func (r Result) TotalUnits() int {
	total := 0
	for _, n := range r.Units {
		total += n
	}
	return total
}

// Pass is the context of a single render pass: its geometry, strategy and workers.
// A Pass runs once.
type Pass struct {
	size      int
	blockSize int
	model     Model
	render    RenderFunc
	strategy  Strategy
	workers   []*Worker
	pin       bool
	logger    *slog.Logger

	stopped atomic.Bool
	ran     atomic.Bool
}

// NewPass validates cfg and builds the strategy and workers.
// Next-free queues are filled here, before any worker can start.
func NewPass(cfg Config) (*Pass, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidPass, cfg.Size)
	}
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: %d workers", ErrInvalidPass, cfg.Workers)
	}
	if cfg.Render == nil {
		return nil, fmt.Errorf("%w: nil render func", ErrInvalidPass)
	}
	if cfg.BlockSize < 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidPass, cfg.BlockSize)
	}

	p := &Pass{
		size:      cfg.Size,
		blockSize: cfg.BlockSize,
		model:     cfg.Model,
		render:    cfg.Render,
		pin:       cfg.PinThreads,
		logger:    cfg.Logger,
	}
	if p.blockSize == 0 {
		p.blockSize = DefaultBlockSize
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}

	if cfg.Workers == 1 {
		return p, nil
	}

	strategy, err := NewStrategy(cfg.Model, cfg.Size, p.blockSize)
	if err != nil {
		return nil, err
	}
	p.strategy = strategy

	p.workers = make([]*Worker, cfg.Workers)
	for i := range p.workers {
		p.workers[i] = NewWorker(i, cfg.Workers, cfg.Size, p.blockSize, strategy, cfg.Render)
	}
	return p, nil
}

// Size returns the image size.
func (p *Pass) Size() int { return p.size }

// BlockSize returns the rows per block unit.
func (p *Pass) BlockSize() int { return p.blockSize }

// Model returns the configured model.
func (p *Pass) Model() Model { return p.model }

// Strategy returns the pass strategy, or nil for a sequential pass.
func (p *Pass) Strategy() Strategy { return p.strategy }

// Workers returns the pass workers. A sequential pass has none.
func (p *Pass) Workers() []*Worker { return p.workers }

// Sequential reports whether the pass bypasses workers entirely.
func (p *Pass) Sequential() bool { return p.workers == nil }

// Stop asks every worker to stop after its in-flight unit.
func (p *Pass) Stop() {
	p.stopped.Store(true)
	for _, w := range p.workers {
		w.Stop()
	}
}

// Run executes the pass and blocks until every worker has returned.
//
// Worker failures are logged and reported in Result; they do not end the pass.
// A pass ended by Stop returns a nil error with Result.Stopped set.
// If ctx is cancelled while waiting, the pass is stopped, the join continues for
// all workers, and ErrInterrupted is returned.
func (p *Pass) Run(ctx context.Context) (Result, error) {
	if !p.ran.CompareAndSwap(false, true) {
		return Result{}, fmt.Errorf("%w: pass already ran", ErrInvalidPass)
	}
	if p.Sequential() {
		return p.sweep(ctx)
	}

	p.logger.Debug("render pass starting",
		"model", p.model.String(),
		"workers", len(p.workers),
		"size", p.size,
		"units", p.strategy.Space())

	errs := make([]error, len(p.workers))

	var g errgroup.Group
	for _, w := range p.workers {
		g.Go(func() error {
			if p.pin {
				if err := pinThread(w.index); err != nil {
					p.logger.Debug("thread affinity not applied", "worker", w.index, "err", err)
				}
			}
			err := w.Run()
			if err != nil {
				p.logger.Error("worker failed", "worker", w.index, "model", p.model.String(), "err", err)
				errs[w.index] = err
			}
			return err
		})
	}

	// errgroup.Group without a context does not cancel siblings, so every
	// worker still drains its share after another one fails.
	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	var firstErr, runErr error
	select {
	case firstErr = <-done:
	case <-ctx.Done():
		p.logger.Warn("render pass interrupted, waiting for workers",
			"model", p.model.String(), "err", ctx.Err())
		p.Stop()
		firstErr = <-done
		runErr = fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}

	res := Result{Units: make([]int, len(p.workers))}
	for i, w := range p.workers {
		res.Units[i] = w.Units()
		if errs[i] != nil {
			res.Failed++
			res.Errors = append(res.Errors, errs[i])
		}
	}
	res.Stopped = p.stopped.Load() && res.TotalUnits() < p.strategy.Space()

	if firstErr != nil {
		p.logger.Warn("render pass degraded",
			"model", p.model.String(), "failed", res.Failed, "first", firstErr)
	}
	p.logger.Debug("render pass finished",
		"model", p.model.String(),
		"units", res.TotalUnits(),
		"failed", res.Failed,
		"stopped", res.Stopped)
	return res, runErr
}

// sweep renders the raster row by row on the calling goroutine.
func (p *Pass) sweep(ctx context.Context) (res Result, err error) {
	res.Units = []int{0}
	row := 0

	defer func() {
		if r := recover(); r != nil {
			werr := &WorkerError{Model: p.model, Unit: Unit{Kind: UnitRow, Index: row}, Cause: r}
			p.logger.Error("sequential sweep failed", "row", row, "err", werr)
			res.Failed = 1
			res.Errors = []error{werr}
		}
	}()

	for ; row < p.size; row++ {
		if p.stopped.Load() {
			res.Stopped = true
			break
		}
		if ctx.Err() != nil {
			p.logger.Warn("sequential sweep interrupted", "row", row, "err", ctx.Err())
			return res, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		}
		for col := 0; col < p.size; col++ {
			p.render(col, row)
		}
		res.Units[0]++
	}
	return res, nil
}
