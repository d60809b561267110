package workdist

import "log/slog"

// SchedulerOption configures a Scheduler during creation.
//
// Example:
//
//	s := workdist.NewScheduler(
//	    workdist.WithBlockSize(4),
//	    workdist.WithThreadPinning(true),
//	)
type SchedulerOption func(*schedulerOptions)

// schedulerOptions holds optional configuration for Scheduler creation.
type schedulerOptions struct {
	logger    *slog.Logger
	blockSize int
	pin       bool
	tracking  bool
}

// defaultOptions returns the default scheduler options.
func defaultOptions() schedulerOptions {
	return schedulerOptions{
		logger:    nil, // falls back to Logger() at pass time
		blockSize: DefaultBlockSize,
	}
}

// WithLogger sets the logger for this scheduler instead of the package logger.
func WithLogger(l *slog.Logger) SchedulerOption {
	return func(o *schedulerOptions) {
		o.logger = l
	}
}

// WithBlockSize sets the number of rows per block for the block models.
// Values below 1 are ignored.
func WithBlockSize(n int) SchedulerOption {
	return func(o *schedulerOptions) {
		if n >= 1 {
			o.blockSize = n
		}
	}
}

// WithThreadPinning locks every worker to its own OS thread and, on Linux,
// binds that thread to one CPU. Sequential passes are not affected.
func WithThreadPinning(enabled bool) SchedulerOption {
	return func(o *schedulerOptions) {
		o.pin = enabled
	}
}

// WithWriteTracking enables the debug overlap detector. Every pass gets its
// own counter per pixel, and a pass that does not write each pixel exactly
// once fails with *CoverageError. Stopped and degraded passes are not checked.
//
// Tracking adds an atomic increment per pixel. Leave it off for timing runs.
func WithWriteTracking(enabled bool) SchedulerOption {
	return func(o *schedulerOptions) {
		o.tracking = enabled
	}
}
