package workdist

import (
	"image/color"
	"math"
)

// Color is an opaque 32-bit pixel packed as 0xAARRGGBB.
type Color uint32

// Common colors
const (
	Black Color = 0xFF000000
	White Color = 0xFFFFFFFF
)

// RGB packs 8-bit components into an opaque Color.
func RGB(r, g, b uint8) Color {
	return 0xFF000000 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// A returns the alpha component.
func (c Color) A() uint8 { return uint8(c >> 24) }

// NRGBA converts c to a standard non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// HSB creates an opaque color from hue, saturation and brightness.
//
// Only the fractional part of h is used, so 1.25 and 0.25 are the same hue.
// s and v are clamped to [0, 1]. Components are rounded to the nearest 8-bit
// value, matching java.awt.Color.HSBtoRGB.
func HSB(h, s, v float32) Color {
	s = clamp01(s)
	v = clamp01(v)

	if s == 0 {
		c := to8(v)
		return RGB(c, c, c)
	}

	hh := (h - float32(math.Floor(float64(h)))) * 6
	f := hh - float32(math.Floor(float64(hh)))
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(hh) {
	case 0:
		return RGB(to8(v), to8(t), to8(p))
	case 1:
		return RGB(to8(q), to8(v), to8(p))
	case 2:
		return RGB(to8(p), to8(v), to8(t))
	case 3:
		return RGB(to8(p), to8(q), to8(v))
	case 4:
		return RGB(to8(t), to8(p), to8(v))
	default:
		return RGB(to8(v), to8(p), to8(q))
	}
}

func clamp01(x float32) float32 {
	switch {
	case x < 0 || x != x:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

func to8(x float32) uint8 {
	return uint8(x*255 + 0.5)
}
