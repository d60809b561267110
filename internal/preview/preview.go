// Package preview draws images on a truecolor terminal using half-block
// characters, two pixel rows per text line.
package preview

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/term"
)

// DefaultColumns is the preview width used when the terminal size is unknown.
const DefaultColumns = 80

// ErrNotTerminal is returned by Terminal.Show when the output is not a terminal.
var ErrNotTerminal = errors.New("preview: output is not a terminal")

// upperHalf is drawn with the foreground set to the top pixel and the
// background set to the bottom pixel.
const upperHalf = "▀"

// Terminal shows images on the terminal behind a file descriptor.
type Terminal struct {
	w  io.Writer
	fd int

	// MaxColumns caps the preview width. Zero means the terminal width.
	MaxColumns int
}

// NewTerminal creates a preview writing to w, which must be the terminal
// identified by fd.
func NewTerminal(w io.Writer, fd int) *Terminal {
	return &Terminal{w: w, fd: fd}
}

// Columns returns the preview width for the current terminal.
func (t *Terminal) Columns() int {
	cols := DefaultColumns
	if w, _, err := term.GetSize(t.fd); err == nil && w > 0 {
		cols = w
	}
	if t.MaxColumns > 0 && cols > t.MaxColumns {
		cols = t.MaxColumns
	}
	return cols
}

// Show scales img to the terminal width and writes it.
func (t *Terminal) Show(img image.Image) error {
	if !term.IsTerminal(t.fd) {
		return ErrNotTerminal
	}
	return Encode(t.w, img, t.Columns())
}

// Fit returns img scaled to at most cols pixels wide, keeping its aspect ratio.
// Images already narrow enough are copied unscaled.
func Fit(img image.Image, cols int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if cols <= 0 || w <= cols {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
		return dst
	}

	sh := max(h*cols/w, 1)
	dst := image.NewNRGBA(image.Rect(0, 0, cols, sh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Encode writes img as ANSI truecolor half blocks at most cols characters wide.
// An odd last pixel row is paired with black.
func Encode(w io.Writer, img image.Image, cols int) error {
	src := Fit(img, cols)
	b := src.Bounds()
	bw := bufio.NewWriter(w)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := src.NRGBAAt(x, y)
			bottom := color.NRGBA{A: 0xff}
			if y+1 < b.Max.Y {
				bottom = src.NRGBAAt(x, y+1)
			}
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B, upperHalf)
		}
		if _, err := bw.WriteString("\x1b[0m\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
