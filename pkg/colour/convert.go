package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/undertone/pkg/matrix"
)

// CIE constants for the Lab transfer function.
const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

var (
	// D65 reference white, Y normalised to 100.
	whiteD65 = xyz{X: 95.047, Y: 100.0, Z: 108.883}

	// D50 reference white, Y normalised to 100.
	whiteD50 = xyz{X: 96.422, Y: 100.0, Z: 82.521}

	// Linear sRGB to XYZ (D65).
	srgbToXYZ = matrix.Matrix3x3{
		{0.4124564, 0.3575761, 0.1804375},
		{0.2126729, 0.7151522, 0.0721750},
		{0.0193339, 0.1191920, 0.9503041},
	}

	// XYZ (D65) to linear sRGB.
	xyzToSRGB = matrix.Matrix3x3{
		{3.2404542, -1.5371385, -0.4985314},
		{-0.9692660, 1.8760108, 0.0415560},
		{0.0556434, -0.2040259, 1.0572252},
	}
)

// RGBToLab converts an sRGB colour to CIE Lab (D65).
func RGBToLab(c RGB) Lab {
	return xyzToLab(rgbToXYZ(c), whiteD65)
}

// LabToRGB converts a CIE Lab (D65) colour back to sRGB.
// Lab values outside the domain are clamped first and channels that fall outside
// the sRGB gamut are clamped into 0-255.
func LabToRGB(lab Lab) RGB {
	return xyzToRGB(labToXYZ(lab.Clamp(), whiteD65))
}

// RGBToLabD50 converts an sRGB colour to CIE Lab relative to the D50 white point,
// using Bradford chromatic adaptation. D50 is the print and ICC profile
// connection space illuminant.
func RGBToLabD50(c RGB) Lab {
	return xyzToLab(adaptXYZ(rgbToXYZ(c), matrix.BradfordD65ToD50()), whiteD50)
}

// RGBToHex returns the colour as a lowercase "#rrggbb" string.
func RGBToHex(c RGB) string {
	return c.Hex()
}

// HexToRGB parses a hex colour in "#rgb" or "#rrggbb" form. The leading '#' is
// optional and digits are case-insensitive.
func HexToRGB(s string) (RGB, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected #rgb or #rrggbb", s)
	}

	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func rgbToXYZ(c RGB) xyz {
	linear := matrix.Vector3{
		srgbToLinear(float64(c.R) / 255.0),
		srgbToLinear(float64(c.G) / 255.0),
		srgbToLinear(float64(c.B) / 255.0),
	}
	v := srgbToXYZ.MulVec(linear).Scale(100)
	return xyz{X: v[0], Y: v[1], Z: v[2]}
}

func xyzToRGB(t xyz) RGB {
	linear := xyzToSRGB.MulVec(matrix.Vector3{t.X, t.Y, t.Z}.Scale(0.01))
	return RGB{
		R: toChannel(linearToSRGB(linear[0])),
		G: toChannel(linearToSRGB(linear[1])),
		B: toChannel(linearToSRGB(linear[2])),
	}
}

func xyzToLab(t xyz, white xyz) Lab {
	fx := labF(t.X / white.X)
	fy := labF(t.Y / white.Y)
	fz := labF(t.Z / white.Z)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}.Clamp()
}

func labToXYZ(lab Lab, white xyz) xyz {
	fy := (lab.L + 16) / 116
	fx := fy + lab.A/500
	fz := fy - lab.B/200

	return xyz{
		X: labFInverse(fx) * white.X,
		Y: labFInverse(fy) * white.Y,
		Z: labFInverse(fz) * white.Z,
	}
}

func adaptXYZ(t xyz, m matrix.Matrix3x3) xyz {
	v := m.MulVec(matrix.Vector3{t.X, t.Y, t.Z})
	return xyz{X: v[0], Y: v[1], Z: v[2]}
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labFInverse(f float64) float64 {
	if f3 := f * f * f; f3 > labEpsilon {
		return f3
	}
	return (116*f - 16) / labKappa
}

// srgbToLinear removes the sRGB gamma companding from a channel in 0-1.
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB applies sRGB gamma companding to a linear channel.
func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// toChannel scales a 0-1 channel to 0-255 with rounding and clamping.
func toChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
