// Package tone classifies Lab colours by undertone (warm, cool or neutral).
package tone

import (
	"math"

	"github.com/jmylchreest/undertone/pkg/colour"
)

// Tone is the undertone of a colour.
type Tone string

const (
	// Warm colours lean yellow or gold.
	Warm Tone = "warm"
	// Cool colours lean blue or pink.
	Cool Tone = "cool"
	// Neutral colours sit inside the calibration deadband.
	Neutral Tone = "neutral"
)

// String returns the tone name.
func (t Tone) String() string {
	return string(t)
}

// Result is a tone classification with a 0-100 confidence.
type Result struct {
	Tone       Tone    `json:"tone"`
	Confidence float64 `json:"confidence"`
}

const (
	// aWeight is the share of the a* (green-red) axis folded into the warmth
	// score; b* (blue-yellow) carries the rest of the undertone signal.
	aWeight = 0.5

	// redPivot is the hue angle, in degrees, at which red stops leaning pink
	// and starts leaning coral. redBlend is the width of the transition either
	// side of it.
	redPivot = 30.0
	redBlend = 20.0

	// confidenceFalloff controls how quickly confidence saturates once a
	// colour leaves the deadband.
	confidenceFalloff = 10.0

	// warmRatioScale controls how quickly WarmRatio saturates towards 0 or 100.
	warmRatioScale = 20.0

	// neutralConfidence is reported for colours inside the deadband.
	neutralConfidence = 50.0
)

// Classifier classifies colours against a population calibration.
type Classifier struct {
	Calibration Calibration
}

// NewClassifier returns a classifier that uses the given calibration.
func NewClassifier(cal Calibration) Classifier {
	return Classifier{Calibration: cal}
}

// Warmth returns the signed warmth score of lab after calibration offsets.
// Positive scores are warm, negative are cool.
//
// b* decides the direction. Green a* always pulls towards cool. Red a* pulls
// towards warm when it comes with yellow (coral, peach) and towards cool when
// it does not (pink, magenta), blending linearly across redPivot.
func (c Classifier) Warmth(lab colour.Lab) float64 {
	lab = lab.Clamp()
	a := lab.A - c.Calibration.AOffset
	b := lab.B - c.Calibration.BOffset
	if a <= 0 {
		return b + aWeight*a
	}
	hue := math.Atan2(b, a) * 180 / math.Pi
	lean := clamp((hue-redPivot)/redBlend, -1, 1)
	return b + aWeight*a*lean
}

// Classify returns the tone of lab.
func (c Classifier) Classify(lab colour.Lab) Tone {
	return c.ClassifyWithConfidence(lab).Tone
}

// ClassifyWithConfidence returns the tone of lab and a confidence that grows with
// the distance from the neutral deadband: 50 at the boundary, above 90 for strongly
// warm or cool colours. Colours inside the deadband are Neutral with confidence 50.
func (c Classifier) ClassifyWithConfidence(lab colour.Lab) Result {
	w := c.Warmth(lab)
	margin := math.Abs(w) - c.Calibration.Deadband
	if margin <= 0 {
		return Result{Tone: Neutral, Confidence: neutralConfidence}
	}

	t := Cool
	if w > 0 {
		t = Warm
	}
	conf := 50 + 50*(1-math.Exp(-margin/confidenceFalloff))
	return Result{Tone: t, Confidence: clamp(conf, 0, 100)}
}

// WarmRatio maps lab onto a 0-100 warmth scale: 0 is fully cool, 100 fully warm
// and 50 neutral.
func (c Classifier) WarmRatio(lab colour.Lab) float64 {
	return clamp(50+50*math.Tanh(c.Warmth(lab)/warmRatioScale), 0, 100)
}

// Classify returns the tone of lab using the default calibration.
func Classify(lab colour.Lab) Tone {
	return defaultClassifier().Classify(lab)
}

// ClassifyWithConfidence classifies lab using the default calibration.
func ClassifyWithConfidence(lab colour.Lab) Result {
	return defaultClassifier().ClassifyWithConfidence(lab)
}

// WarmRatio returns the 0-100 warmth of lab using the default calibration.
func WarmRatio(lab colour.Lab) float64 {
	return defaultClassifier().WarmRatio(lab)
}

func defaultClassifier() Classifier {
	return NewClassifier(DefaultCalibration())
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
