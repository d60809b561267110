package workdist

import "math"

// Extent of the noise field shown, in lattice cells. Only the first quadrant
// is drawn, with y increasing upwards.
const (
	PerlinWidth  = 15.0
	PerlinHeight = 15.0
)

// Perlin renders 2D gradient noise as grayscale.
// Lattice gradients come from an integer hash, so the field is deterministic.
type Perlin struct {
	size int
}

// NewPerlin creates a Perlin noise kernel for a size x size image.
func NewPerlin(size int) *Perlin {
	return &Perlin{size: size}
}

// Size returns the image size the kernel maps.
func (p *Perlin) Size() int { return p.size }

// ComputePixel implements Kernel.
func (p *Perlin) ComputePixel(col, row int) Color {
	s := float64(p.size)
	x := PerlinWidth / s * float64(col)
	y := PerlinHeight - PerlinHeight/s*float64(row)
	return HSB(0, 0, float32(math.Abs(Noise(x, y))))
}

// Noise returns the gradient noise value at (x, y) for x, y >= 0.
func Noise(x, y float64) float64 {
	x0 := int(x)
	y0 := int(y)
	x1 := x0 + 1
	y1 := y0 + 1

	sx := x - float64(x0)
	sy := y - float64(y0)

	ix0 := smootherstep(dotGridGradient(x0, y0, x, y), dotGridGradient(x1, y0, x, y), sx)
	ix1 := smootherstep(dotGridGradient(x0, y1, x, y), dotGridGradient(x1, y1, x, y), sx)
	return smootherstep(ix0, ix1, sy)
}

// smootherstep interpolates between a0 and a1 with weight w in [0, 1]
// along 6w^5 - 15w^4 + 10w^3.
func smootherstep(a0, a1, w float64) float64 {
	return (a1-a0)*((w*(w*6-15)+10)*w*w*w) + a0
}

// gradient returns the unit gradient vector at lattice point (ix, iy).
// The angle comes from mixing the coordinates with multiply and 16-bit rotate
// steps in 64-bit arithmetic.
func gradient(ix, iy int) (gx, gy float64) {
	const half = 16

	a := int64(ix)
	b := int64(iy)

	a *= 3284157443
	b ^= a<<half | int64(uint64(a)>>half)
	b *= 1911520717
	a ^= b<<half | int64(uint64(b)>>half)
	a *= 2048419325

	angle := float64(a) * (3.14159265 / math.MinInt32)
	return math.Sin(angle), math.Cos(angle)
}

func dotGridGradient(ix, iy int, x, y float64) float64 {
	gx, gy := gradient(ix, iy)
	return (x-float64(ix))*gx + (y-float64(iy))*gy
}
