// Package workdist measures how work-distribution strategies affect the
// speed of embarrassingly parallel image rendering.
//
// # Overview
//
// A render pass computes every pixel of a square image exactly once. The
// image is split among a fixed number of workers according to a Model, the
// workers are launched, and the pass waits for all of them to return. Pixels
// are produced by a Kernel; two kernels ship with the package: a Julia set
// fractal and a Perlin gradient noise field.
//
// # Quick Start
//
//	import "github.com/gogpu/workdist"
//
//	s := workdist.NewScheduler()
//	res, err := s.Render(ctx, workdist.Job{
//	    Size:    1024,
//	    Images:  1,
//	    Workers: 8,
//	    Model:   workdist.NextFreeRow,
//	    Kernel:  workdist.NewJulia(-0.4, 0.6, 1024),
//	})
//	fmt.Printf("Drawing took %f seconds\n", res.Elapsed.Seconds())
//
// # Distribution Models
//
// Three models assign units statically by stride: worker i takes units i,
// i+N, i+2N and so on, where N is the worker count. Three models assign
// units dynamically from a shared queue filled before the workers start.
// Units are rows, pixels or blocks of BlockSize rows:
//
//	1 RowStride       static rows
//	2 BlockStride     static blocks
//	3 PixelStride     static pixels
//	4 NextFreeRow     dynamic rows
//	5 NextFreePixel   dynamic pixels
//	6 NextFreeBlock   dynamic blocks
//
// A pass with one worker ignores the model and sweeps the image row by row
// on the calling goroutine.
//
// # Concurrency
//
// Workers write to disjoint indices of the shared ImageBuffer without locks.
// The buffer must only be read after the pass has returned. A panicking
// kernel ends only its own worker; the pass completes degraded and reports
// the failure in PassStats.
package workdist

// Version is the current version of the library.
const Version = "0.1.0"
