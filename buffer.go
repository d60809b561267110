package workdist

import (
	"image"
	"image/color"
)

// Size limits for a square image.
const (
	MinSize = 1
	MaxSize = 2048
)

// ImageBuffer is a square, row-major buffer of packed colors shared by all
// workers of a render pass.
//
// Writes from a pass are not synchronized: each distribution model assigns
// every index to exactly one worker. Read the buffer only after the pass has
// returned.
type ImageBuffer struct {
	size int
	data []Color
}

// NewImageBuffer allocates a size x size buffer filled with zero (transparent) pixels.
func NewImageBuffer(size int) (*ImageBuffer, error) {
	if err := checkRange("size", size, MinSize, MaxSize, ErrInvalidSize); err != nil {
		return nil, err
	}
	return &ImageBuffer{
		size: size,
		data: make([]Color, size*size),
	}, nil
}

// Size returns the width and height of the buffer.
func (b *ImageBuffer) Size() int {
	return b.size
}

// Len returns the number of pixels.
func (b *ImageBuffer) Len() int {
	return len(b.data)
}

// Data returns the raw pixels, row-major.
func (b *ImageBuffer) Data() []Color {
	return b.data
}

// Index returns the flat index of (col, row).
func (b *ImageBuffer) Index(col, row int) int {
	return row*b.size + col
}

// Set stores c at (col, row). Out-of-range coordinates are ignored.
func (b *ImageBuffer) Set(col, row int, c Color) {
	if col < 0 || col >= b.size || row < 0 || row >= b.size {
		return
	}
	b.data[row*b.size+col] = c
}

// Pixel returns the color at (col, row), or zero when out of range.
func (b *ImageBuffer) Pixel(col, row int) Color {
	if col < 0 || col >= b.size || row < 0 || row >= b.size {
		return 0
	}
	return b.data[row*b.size+col]
}

// Clear resets every pixel to zero.
func (b *ImageBuffer) Clear() {
	clear(b.data)
}

// Equal reports whether two buffers have the same size and pixels.
func (b *ImageBuffer) Equal(other *ImageBuffer) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, c := range b.data {
		if other.data[i] != c {
			return false
		}
	}
	return true
}

// ToImage converts the buffer to an image.NRGBA.
func (b *ImageBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.size, b.size))
	for i, c := range b.data {
		o := i * 4
		img.Pix[o+0] = c.R()
		img.Pix[o+1] = c.G()
		img.Pix[o+2] = c.B()
		img.Pix[o+3] = c.A()
	}
	return img
}

// At implements the image.Image interface. The value is a color.NRGBA,
// matching ColorModel.
func (b *ImageBuffer) At(x, y int) color.Color {
	return b.Pixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (b *ImageBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.size, b.size)
}

// ColorModel implements the image.Image interface.
func (b *ImageBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
