// Command perlin times the rendering of Perlin noise images under each work
// distribution model.
//
// Usage:
//
//	perlin [flags] size images threads model
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/workdist"
	"github.com/gogpu/workdist/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := cli.NewCommand("perlin", []cli.Param{
		{Name: "size", Desc: "the height and width for the image", Range: cli.IntRange(workdist.MinSize, workdist.MaxSize)},
		{Name: "images", Desc: "the number of images to generate (only the last is displayed)", Range: cli.IntRange(workdist.MinImages, workdist.MaxImages)},
		{Name: "threads", Desc: "the number of threads to use", Range: cli.IntRange(workdist.MinWorkers, workdist.MaxWorkers)},
		{Name: "model", Desc: "the work distribution model to use when threading", Range: cli.IntRange(int(workdist.RowStride), int(workdist.NextFreeBlock)), Choices: cli.ModelChoices()},
	}, stderr)

	var opts cli.Options
	opts.Register(cmd.Flags)

	pos, err := cmd.Parse(args)
	if err != nil {
		return cmd.Fail(err)
	}
	if !opts.JSON {
		fmt.Fprintln(stdout, "Perlin Noise Speedup Tester")
	}
	banner := func(format string, v ...any) {
		if !opts.JSON {
			fmt.Fprintf(stdout, format, v...)
		}
	}

	size, err := cli.ParseInt(pos[0], "size", workdist.MinSize, workdist.MaxSize)
	if err != nil {
		return cmd.Fail(err)
	}
	banner("\tSIZE: %s\n", pos[0])

	images, err := cli.ParseInt(pos[1], "images", workdist.MinImages, workdist.MaxImages)
	if err != nil {
		return cmd.Fail(err)
	}
	banner("\t# IMAGES: %s\n", pos[1])

	threads, err := cli.ParseInt(pos[2], "threads", workdist.MinWorkers, workdist.MaxWorkers)
	if err != nil {
		return cmd.Fail(err)
	}
	banner("\t# THREADS: %s\n", pos[2])

	code, err := cli.ParseInt(pos[3], "model", int(workdist.RowStride), int(workdist.NextFreeBlock))
	if err != nil {
		return cmd.Fail(err)
	}
	if threads == 1 {
		banner("\tTHREADING MODEL: N/A\n")
	} else {
		banner("\tTHREADING MODEL: %s\n", pos[3])
	}

	job := workdist.Job{
		Size:    size,
		Images:  images,
		Workers: threads,
		Model:   workdist.Model(code),
		Kernel:  workdist.NewPerlin(size),
	}
	return cli.Execute(ctx, cli.Env{Stdout: stdout, Stderr: stderr}, "perlin", job, &opts)
}
