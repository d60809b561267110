package workdist

import (
	"log/slog"
	"sync/atomic"
)

// newNopLogger creates a logger that silently discards all output.
// slog.DiscardHandler reports every level disabled, so callers skip
// building attributes entirely.
func newNopLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while render passes are logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the package logger used by schedulers that were not
// given one through WithLogger. By default workdist produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore silence.
//
// Log levels used by workdist:
//   - [slog.LevelDebug]: pass start and finish, unit counts, affinity results
//   - [slog.LevelWarn]: a pass interrupted while joining its workers
//   - [slog.LevelError]: a worker that panicked, a failed coverage check
//
// Example:
//
//	workdist.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
