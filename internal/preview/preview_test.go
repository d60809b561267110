package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"strings"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFit_Downscale(t *testing.T) {
	got := Fit(solid(100, 50, color.NRGBA{R: 200, A: 255}), 10)
	if got.Bounds().Dx() != 10 || got.Bounds().Dy() != 5 {
		t.Fatalf("Fit() bounds = %v, want 10x5", got.Bounds())
	}
	if c := got.NRGBAAt(4, 2); c.R < 199 || c.R > 201 || c.A < 254 {
		t.Errorf("scaled pixel = %v, want solid red 200", c)
	}
}

func TestFit_NarrowImageUnchanged(t *testing.T) {
	src := solid(3, 7, color.NRGBA{G: 10, A: 255})
	got := Fit(src, 80)
	if got.Bounds() != image.Rect(0, 0, 3, 7) {
		t.Fatalf("Fit() bounds = %v, want 3x7", got.Bounds())
	}
	if got.NRGBAAt(2, 6) != src.NRGBAAt(2, 6) {
		t.Error("Fit() changed an image that already fits")
	}
}

func TestFit_MinimumHeight(t *testing.T) {
	got := Fit(solid(400, 1, color.NRGBA{A: 255}), 4)
	if got.Bounds().Dy() != 1 {
		t.Errorf("height = %d, want 1", got.Bounds().Dy())
	}
}

func TestEncode_HalfBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	if err := Encode(&buf, img, 80); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("lines = %d, want 1", n)
	}
	if n := strings.Count(out, upperHalf); n != 2 {
		t.Errorf("half blocks = %d, want 2", n)
	}
	for _, want := range []string{
		"\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m",
		"\x1b[38;2;0;255;0m\x1b[48;2;1;2;3m",
		"\x1b[0m\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestEncode_OddHeightPadsBlack(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, solid(1, 3, color.NRGBA{R: 9, G: 9, B: 9, A: 255}), 80); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("lines = %d, want 2", n)
	}
	if !strings.Contains(out, "\x1b[38;2;9;9;9m\x1b[48;2;0;0;0m") {
		t.Error("last odd row should be paired with black")
	}
}

func TestTerminal_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "preview")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	term := NewTerminal(f, int(f.Fd()))
	if err := term.Show(solid(2, 2, color.NRGBA{A: 255})); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Show() error = %v, want ErrNotTerminal", err)
	}
	if got := term.Columns(); got != DefaultColumns {
		t.Errorf("Columns() = %d, want %d for a regular file", got, DefaultColumns)
	}

	term.MaxColumns = 20
	if got := term.Columns(); got != 20 {
		t.Errorf("Columns() = %d, want capped 20", got)
	}
}
