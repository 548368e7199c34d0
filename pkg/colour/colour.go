// Package colour provides colour space conversion, perceptual distance, dominant
// colour clustering and background filtering for personal-colour analysis.
package colour

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents an 8-bit sRGB colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// NewRGB builds an RGB colour from integer channels, clamping each into 0-255.
func NewRGB(r, g, b int) RGB {
	return RGB{R: clampByte(r), G: clampByte(g), B: clampByte(b)}
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color. The colour is always fully opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// HSL returns hue (0-360), saturation (0-1) and lightness (0-1).
func (c RGB) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// ToRGB converts a color.Color to RGB, discarding alpha. Premultiplied colours
// are converted back to their straight channel values first.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Lab is a colour in CIE L*a*b* relative to the D65 white point.
// L is lightness (0-100), A is the green-red axis and B the blue-yellow axis (-128..127).
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Lab domain limits.
const (
	MinL  = 0.0
	MaxL  = 100.0
	MinAB = -128.0
	MaxAB = 127.0
)

// Clamp returns the colour with every component forced into the Lab domain.
// NaN components become the lower bound of L or zero for a and b.
func (lab Lab) Clamp() Lab {
	return Lab{
		L: clampFloat(lab.L, MinL, MaxL, MinL),
		A: clampFloat(lab.A, MinAB, MaxAB, 0),
		B: clampFloat(lab.B, MinAB, MaxAB, 0),
	}
}

// String returns the colour formatted as "lab(L, a, b)".
func (lab Lab) String() string {
	return fmt.Sprintf("lab(%.2f, %.2f, %.2f)", lab.L, lab.A, lab.B)
}

// xyz holds CIE XYZ tristimulus values scaled so that Y of the white point is 100.
type xyz struct {
	X, Y, Z float64
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampFloat(v, lo, hi, nan float64) float64 {
	if math.IsNaN(v) {
		return nan
	}
	return math.Max(lo, math.Min(hi, v))
}
