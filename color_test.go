package workdist

import (
	"image/color"
	"testing"
)

func TestRGB_Components(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c != 0xFF123456 {
		t.Errorf("RGB() = %#08x, want 0xff123456", uint32(c))
	}
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 || c.A() != 0xFF {
		t.Errorf("components = (%#x, %#x, %#x, %#x)", c.R(), c.G(), c.B(), c.A())
	}
}

func TestColor_ImplementsColor(t *testing.T) {
	var c color.Color = RGB(255, 0, 0)
	r, g, b, a := c.RGBA()
	if r != 0xFFFF || g != 0 || b != 0 || a != 0xFFFF {
		t.Errorf("RGBA() = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}
}

func TestHSB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float32
		want    Color
	}{
		{"black", 0, 0, 0, Black},
		{"white", 0, 0, 1, White},
		{"gray", 0, 0, 0.5, RGB(128, 128, 128)},
		{"red", 0, 1, 1, RGB(255, 0, 0)},
		{"green", 1.0 / 3, 1, 1, RGB(0, 255, 0)},
		{"blue", 2.0 / 3, 1, 1, RGB(0, 0, 255)},
		{"cyan", 0.5, 1, 1, RGB(0, 255, 255)},
		{"hue wraps", 1.5, 1, 1, RGB(0, 255, 255)},
		{"negative hue wraps", -0.5, 1, 1, RGB(0, 255, 255)},
		{"brightness clamped", 0, 0, 3, White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSB(tt.h, tt.s, tt.v); got != tt.want {
				t.Errorf("HSB(%v, %v, %v) = %#08x, want %#08x", tt.h, tt.s, tt.v, uint32(got), uint32(tt.want))
			}
		})
	}
}
