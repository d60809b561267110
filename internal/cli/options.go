package cli

import (
	"flag"
	"io"
	"log/slog"

	"github.com/google/gops/agent"

	"github.com/gogpu/workdist"
)

// Options are the flags every render command accepts.
type Options struct {
	Verbose bool
	JSON    bool
	Stats   bool
	Preview bool
	Pin     bool
	Verify  bool
	Gops    bool
}

// Register adds the common flags to fs.
func (o *Options) Register(fs *flag.FlagSet) {
	fs.BoolVar(&o.Verbose, "v", false, "log scheduler diagnostics to stderr")
	fs.BoolVar(&o.JSON, "json", false, "print a JSON report instead of the timing line")
	fs.BoolVar(&o.Stats, "stats", false, "print per-worker unit counts")
	fs.BoolVar(&o.Preview, "preview", false, "show the last image on the terminal")
	fs.BoolVar(&o.Pin, "pin", false, "lock each worker to its own OS thread and CPU")
	fs.BoolVar(&o.Verify, "verify", false, "check that every pixel is written exactly once")
	fs.BoolVar(&o.Gops, "gops", false, "start the gops diagnostics agent")
}

// Logger returns a debug text logger on w when -v is set, and a silent one
// otherwise.
func (o *Options) Logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// SchedulerOptions translates the flags into scheduler options.
func (o *Options) SchedulerOptions(log *slog.Logger) []workdist.SchedulerOption {
	return []workdist.SchedulerOption{
		workdist.WithLogger(log),
		workdist.WithThreadPinning(o.Pin),
		workdist.WithWriteTracking(o.Verify),
	}
}

// StartAgent starts the gops agent when -gops is set. The returned function
// shuts it down and is never nil.
func (o *Options) StartAgent(log *slog.Logger) func() {
	if !o.Gops {
		return func() {}
	}
	if err := agent.Listen(agent.Options{}); err != nil {
		log.Warn("gops agent not started", "err", err)
		return func() {}
	}
	log.Debug("gops agent listening")
	return agent.Close
}
