package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gogpu/workdist"
	"github.com/gogpu/workdist/internal/preview"
	"github.com/gogpu/workdist/internal/report"
)

// Display receives the finished image.
type Display interface {
	Show(img image.Image) error
}

// Env is the process environment a command runs in.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer

	// Display overrides the -preview terminal display when not nil.
	Display Display
}

// Execute renders job with the scheduler configured by o, prints the timing
// line or report, hands the last image to the display, and returns the
// process exit code.
func Execute(ctx context.Context, env Env, name string, job workdist.Job, o *Options) int {
	log := o.Logger(env.Stderr)
	defer o.StartAgent(log)()

	s := workdist.NewScheduler(o.SchedulerOptions(log)...)
	res, err := s.Render(ctx, job)

	interrupted := errors.Is(err, workdist.ErrInterrupted)
	if err != nil && !interrupted {
		fmt.Fprintf(env.Stderr, "%s: %v\n", name, err)
		return ExitFailure
	}
	if interrupted {
		fmt.Fprintln(env.Stderr, "Execution was Interrupted!")
	}

	rep := report.New(name, job, res)
	rep.Interrupted = interrupted

	if o.JSON {
		if err := report.WriteJSON(env.Stdout, rep); err != nil {
			fmt.Fprintf(env.Stderr, "%s: %v\n", name, err)
			return ExitFailure
		}
	} else {
		fmt.Fprintf(env.Stdout, "Drawing took %f seconds\n", res.Elapsed.Seconds())
	}
	if o.Stats {
		if err := report.WriteStats(env.Stdout, rep); err != nil {
			fmt.Fprintf(env.Stderr, "%s: %v\n", name, err)
			return ExitFailure
		}
	}

	if interrupted {
		return ExitInterrupted
	}

	if d := display(env, o); d != nil {
		if err := d.Show(res.Buffer); err != nil {
			log.Warn("image not displayed", "err", err)
		}
	}
	return ExitOK
}

func display(env Env, o *Options) Display {
	if env.Display != nil {
		return env.Display
	}
	if !o.Preview {
		return nil
	}
	return preview.NewTerminal(env.Stdout, terminalFd(env.Stdout))
}

// terminalFd returns the descriptor behind w, or -1 when w is not a file.
// Writers without a descriptor are never treated as terminals.
func terminalFd(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return -1
	}
	return int(f.Fd())
}
