package colour

import (
	"image/color"
	"math"
	"testing"
)

func TestNewRGBClamps(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    RGB
	}{
		{name: "in range", r: 10, g: 20, b: 30, want: RGB{R: 10, G: 20, B: 30}},
		{name: "negative", r: -5, g: 0, b: -300, want: RGB{R: 0, G: 0, B: 0}},
		{name: "overflow", r: 256, g: 1000, b: 255, want: RGB{R: 255, G: 255, B: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRGB(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("NewRGB(%d, %d, %d) = %+v, want %+v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "semi-transparent keeps straight channels",
			color: color.NRGBA{R: 200, G: 100, B: 50, A: 128},
			want:  RGB{R: 200, G: 100, B: 50},
		},
		{
			name:  "round trip through RGBA",
			color: RGB{R: 12, G: 34, B: 56},
			want:  RGB{R: 12, G: 34, B: 56},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHexAndString(t *testing.T) {
	c := RGB{R: 128, G: 128, B: 128}
	if got := c.Hex(); got != "#808080" {
		t.Errorf("Hex() = %s, want #808080", got)
	}
	if got := c.String(); got != "rgb(128, 128, 128)" {
		t.Errorf("String() = %s, want rgb(128, 128, 128)", got)
	}
}

func TestRGBHSL(t *testing.T) {
	h, s, l := RGB{R: 255, G: 0, B: 0}.HSL()
	if math.Abs(h) > 1e-9 || math.Abs(s-1) > 1e-9 || math.Abs(l-0.5) > 1e-9 {
		t.Errorf("HSL() = (%v, %v, %v), want (0, 1, 0.5)", h, s, l)
	}
}

func TestLabClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Lab
		want Lab
	}{
		{name: "in range", in: Lab{L: 50, A: 10, B: -10}, want: Lab{L: 50, A: 10, B: -10}},
		{name: "too high", in: Lab{L: 140, A: 200, B: 300}, want: Lab{L: 100, A: 127, B: 127}},
		{name: "too low", in: Lab{L: -3, A: -200, B: -129}, want: Lab{L: 0, A: -128, B: -128}},
		{name: "nan", in: Lab{L: math.NaN(), A: math.NaN(), B: math.NaN()}, want: Lab{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContrastRatio(t *testing.T) {
	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}
	if got := ContrastRatio(black, white); math.Abs(got-21) > 1e-9 {
		t.Errorf("ContrastRatio(black, white) = %v, want 21", got)
	}
	if got := ContrastRatio(white, white); math.Abs(got-1) > 1e-9 {
		t.Errorf("ContrastRatio(white, white) = %v, want 1", got)
	}
}
