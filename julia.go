package workdist

import "math"

// Julia set parameters.
const (
	// JuliaMaxIterations is the iteration count after which a point is in the set.
	JuliaMaxIterations = 100

	// JuliaThreshold is the escape radius.
	JuliaThreshold = 2.0

	// JuliaWidth and JuliaHeight are the extent of the complex plane shown,
	// centred on the origin.
	JuliaWidth  = 3.25
	JuliaHeight = 3.25
)

// Julia renders the filled Julia set of z -> z^2 + (a + bi).
//
// Points that stay inside the escape radius are black; escaping points get a
// smooth hue from the accumulated exp(-|z|) of their orbit.
type Julia struct {
	a, b float64
	size int
}

// NewJulia creates a Julia kernel for constant a + bi on a size x size image.
func NewJulia(a, b float64, size int) *Julia {
	return &Julia{a: a, b: b, size: size}
}

// Size returns the image size the kernel maps.
func (j *Julia) Size() int { return j.size }

// ComputePixel implements Kernel.
func (j *Julia) ComputePixel(col, row int) Color {
	x, y := j.toPlane(col, row)
	return juliaColor(x, y, j.a, j.b)
}

// toPlane maps screen coordinates to the complex plane, y up.
func (j *Julia) toPlane(col, row int) (x, y float64) {
	s := float64(j.size)
	x = JuliaWidth/s*float64(col) - JuliaWidth/2
	y = -JuliaHeight/s*float64(row) + JuliaHeight/2
	return x, y
}

func juliaColor(x, y, a, b float64) Color {
	var hue float32
	dist := math.Sqrt(x*x + y*y)

	for i := 0; dist < JuliaThreshold && i < JuliaMaxIterations; i++ {
		x, y = x*x-y*y+a, 2*x*y+b
		dist = math.Sqrt(x*x + y*y)
		hue = addHue(hue, math.Exp(-dist))
	}

	if dist < JuliaThreshold {
		return Black
	}
	return HSB(0.5+10*hue/JuliaMaxIterations, 1, 1)
}

// addHue adds term to hue in float64 and rounds the sum once to float32.
func addHue(hue float32, term float64) float32 {
	return float32(float64(hue) + term)
}
