package workdist

// Kernel computes the color of a single pixel.
//
// Implementations must be pure and reentrant: a render pass calls ComputePixel
// concurrently from every worker, for distinct pixels, without synchronization.
type Kernel interface {
	ComputePixel(col, row int) Color
}

// KernelFunc adapts an ordinary function to the Kernel interface.
type KernelFunc func(col, row int) Color

// ComputePixel calls f(col, row).
func (f KernelFunc) ComputePixel(col, row int) Color {
	return f(col, row)
}

// Sized is implemented by kernels bound to a fixed image size.
// The scheduler rejects a buffer whose size differs.
type Sized interface {
	Size() int
}
