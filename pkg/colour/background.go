package colour

// BackgroundThresholds configures the heuristic that recognises plain backdrop
// pixels (studio white, black cards, grey walls) so they do not dominate a sample.
type BackgroundThresholds struct {
	// White marks a pixel as background when every channel is above it.
	White uint8 `json:"white"`
	// Black marks a pixel as background when every channel is below it.
	Black uint8 `json:"black"`
	// GraySpread marks a pixel as background when max-min channel spread is below it,
	// regardless of brightness.
	GraySpread int `json:"gray_spread"`
}

// DefaultBackgroundThresholds returns the thresholds used by the package-level helpers.
func DefaultBackgroundThresholds() BackgroundThresholds {
	return BackgroundThresholds{
		White:      240,
		Black:      15,
		GraySpread: 10,
	}
}

// IsBackground reports whether c looks like a near-white, near-black or near-grey backdrop.
func (t BackgroundThresholds) IsBackground(c RGB) bool {
	if c.R > t.White && c.G > t.White && c.B > t.White {
		return true
	}
	if c.R < t.Black && c.G < t.Black && c.B < t.Black {
		return true
	}
	return Spread(c) < t.GraySpread
}

// FilterBackground returns the pixels that are not background, preserving order.
// The input slice is not modified.
func (t BackgroundThresholds) FilterBackground(pixels []RGB) []RGB {
	out := make([]RGB, 0, len(pixels))
	for _, p := range pixels {
		if !t.IsBackground(p) {
			out = append(out, p)
		}
	}
	return out
}

// BackgroundRatio returns the percentage (0-100) of pixels that are background.
// Empty input has a ratio of 0.
func (t BackgroundThresholds) BackgroundRatio(pixels []RGB) float64 {
	if len(pixels) == 0 {
		return 0
	}
	n := 0
	for _, p := range pixels {
		if t.IsBackground(p) {
			n++
		}
	}
	return float64(n) / float64(len(pixels)) * 100
}

// IsBackground reports whether c is background under the default thresholds.
func IsBackground(c RGB) bool {
	return DefaultBackgroundThresholds().IsBackground(c)
}

// FilterBackground removes background pixels under the default thresholds.
func FilterBackground(pixels []RGB) []RGB {
	return DefaultBackgroundThresholds().FilterBackground(pixels)
}

// BackgroundRatio returns the background percentage under the default thresholds.
func BackgroundRatio(pixels []RGB) float64 {
	return DefaultBackgroundThresholds().BackgroundRatio(pixels)
}
