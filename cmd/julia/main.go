// Command julia times the rendering of a Julia set fractal.
//
// Usage:
//
//	julia [flags] a b size threads
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/workdist"
	"github.com/gogpu/workdist/internal/cli"
)

// Ranges of the complex constant c = a + bi.
const (
	minA, maxA = -1.0, 1.0
	minB, maxB = -1.0, 1.0
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := cli.NewCommand("julia", []cli.Param{
		{Name: "a", Desc: "the Julia set's a constant", Range: cli.FloatRange(minA, maxA)},
		{Name: "b", Desc: "the Julia set's b constant", Range: cli.FloatRange(minB, maxB)},
		{Name: "size", Desc: "the height and width for the image", Range: cli.IntRange(workdist.MinSize, workdist.MaxSize)},
		{Name: "threads", Desc: "the number of threads to use", Range: cli.IntRange(workdist.MinWorkers, workdist.MaxWorkers)},
	}, stderr)

	var opts cli.Options
	opts.Register(cmd.Flags)
	modelFlag := cmd.Flags.String("model", "1", "work distribution model, by number or name")

	pos, err := cmd.Parse(args)
	if err != nil {
		return cmd.Fail(err)
	}

	a, err := cli.ParseFloat(pos[0], "a", minA, maxA)
	if err != nil {
		return cmd.Fail(err)
	}
	b, err := cli.ParseFloat(pos[1], "b", minB, maxB)
	if err != nil {
		return cmd.Fail(err)
	}
	size, err := cli.ParseInt(pos[2], "size", workdist.MinSize, workdist.MaxSize)
	if err != nil {
		return cmd.Fail(err)
	}
	threads, err := cli.ParseInt(pos[3], "threads", workdist.MinWorkers, workdist.MaxWorkers)
	if err != nil {
		return cmd.Fail(err)
	}
	model, err := cli.ParseModel(*modelFlag, "model")
	if err != nil {
		return cmd.Fail(err)
	}

	job := workdist.Job{
		Size:    size,
		Images:  1,
		Workers: threads,
		Model:   model,
		Kernel:  workdist.NewJulia(a, b, size),
	}
	return cli.Execute(ctx, cli.Env{Stdout: stdout, Stderr: stderr}, "julia", job, &opts)
}
