package season

import (
	"fmt"
	"math"

	"github.com/jmylchreest/undertone/pkg/colour"
)

// Subtype is the modifier that splits a season into three tones.
type Subtype string

const (
	SubtypeLight  Subtype = "light"
	SubtypeTrue   Subtype = "true"
	SubtypeBright Subtype = "bright"
	SubtypeMuted  Subtype = "muted"
	SubtypeDeep   Subtype = "deep"
)

// TwelveTone is one of the twelve seasonal tones.
type TwelveTone int

const (
	LightSpring TwelveTone = iota
	TrueSpring
	BrightSpring
	LightSummer
	TrueSummer
	SoftSummer
	SoftAutumn
	TrueAutumn
	DeepAutumn
	BrightWinter
	TrueWinter
	DeepWinter

	twelveToneCount
)

// toneInfo is the constant metadata attached to each TwelveTone.
type toneInfo struct {
	id      string
	label   string
	season  Season
	subtype Subtype
	anchor  colour.Lab
}

// twelveTones is indexed by TwelveTone and never mutated.
var twelveTones = [twelveToneCount]toneInfo{
	LightSpring:  {id: "light-spring", label: "Light Spring", season: Spring, subtype: SubtypeLight, anchor: colour.Lab{L: 80, A: 10, B: 30}},
	TrueSpring:   {id: "true-spring", label: "True Spring", season: Spring, subtype: SubtypeTrue, anchor: colour.Lab{L: 70, A: 18, B: 45}},
	BrightSpring: {id: "bright-spring", label: "Bright Spring", season: Spring, subtype: SubtypeBright, anchor: colour.Lab{L: 65, A: 30, B: 50}},
	LightSummer:  {id: "light-summer", label: "Light Summer", season: Summer, subtype: SubtypeLight, anchor: colour.Lab{L: 80, A: 5, B: -8}},
	TrueSummer:   {id: "true-summer", label: "True Summer", season: Summer, subtype: SubtypeTrue, anchor: colour.Lab{L: 65, A: 8, B: -18}},
	SoftSummer:   {id: "soft-summer", label: "Soft Summer", season: Summer, subtype: SubtypeMuted, anchor: colour.Lab{L: 58, A: 4, B: -6}},
	SoftAutumn:   {id: "soft-autumn", label: "Soft Autumn", season: Autumn, subtype: SubtypeMuted, anchor: colour.Lab{L: 58, A: 10, B: 22}},
	TrueAutumn:   {id: "true-autumn", label: "True Autumn", season: Autumn, subtype: SubtypeTrue, anchor: colour.Lab{L: 50, A: 22, B: 40}},
	DeepAutumn:   {id: "deep-autumn", label: "Deep Autumn", season: Autumn, subtype: SubtypeDeep, anchor: colour.Lab{L: 35, A: 18, B: 28}},
	BrightWinter: {id: "bright-winter", label: "Bright Winter", season: Winter, subtype: SubtypeBright, anchor: colour.Lab{L: 50, A: 35, B: -35}},
	TrueWinter:   {id: "true-winter", label: "True Winter", season: Winter, subtype: SubtypeTrue, anchor: colour.Lab{L: 40, A: 12, B: -38}},
	DeepWinter:   {id: "deep-winter", label: "Deep Winter", season: Winter, subtype: SubtypeDeep, anchor: colour.Lab{L: 25, A: 8, B: -15}},
}

// AllTwelveTones returns every tone in declaration order.
func AllTwelveTones() []TwelveTone {
	tones := make([]TwelveTone, twelveToneCount)
	for i := range tones {
		tones[i] = TwelveTone(i)
	}
	return tones
}

// ParseTwelveTone parses a tone identifier such as "deep-autumn".
func ParseTwelveTone(s string) (TwelveTone, error) {
	for i, info := range twelveTones {
		if info.id == s {
			return TwelveTone(i), nil
		}
	}
	return 0, fmt.Errorf("unknown twelve-tone: %s", s)
}

// Valid reports whether t is one of the twelve tones.
func (t TwelveTone) Valid() bool {
	return t >= 0 && t < twelveToneCount
}

func (t TwelveTone) info() toneInfo {
	if !t.Valid() {
		return toneInfo{}
	}
	return twelveTones[t]
}

// String returns the tone identifier, e.g. "true-winter".
func (t TwelveTone) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TwelveTone(%d)", int(t))
	}
	return t.info().id
}

// Label returns the display name, e.g. "True Winter".
func (t TwelveTone) Label() string { return t.info().label }

// Season returns the season the tone belongs to.
func (t TwelveTone) Season() Season { return t.info().season }

// Subtype returns the tone's modifier within its season.
func (t TwelveTone) Subtype() Subtype { return t.info().subtype }

// Anchor returns the tone's reference Lab colour.
func (t TwelveTone) Anchor() colour.Lab { return t.info().anchor }

// MarshalText encodes the tone as its identifier.
func (t TwelveTone) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid twelve-tone: %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tone identifier.
func (t *TwelveTone) UnmarshalText(text []byte) error {
	v, err := ParseTwelveTone(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TwelveToneResult is the outcome of ClassifyTwelveTone.
type TwelveToneResult struct {
	Tone       TwelveTone `json:"tone"`
	Label      string     `json:"label"`
	Season     Season     `json:"season"`
	Subtype    Subtype    `json:"subtype"`
	Distance   float64    `json:"distance"`
	Confidence float64    `json:"confidence"`
	// Distances holds the CIEDE2000 distance to every tone, indexed by TwelveTone.
	Distances [twelveToneCount]float64 `json:"distances"`
}

// ClassifyTwelveTone finds the tone whose anchor is nearest to lab by CIEDE2000.
// Confidence is 100 - 2*distance, clamped to 0-100. Ties resolve to the tone
// declared first.
func ClassifyTwelveTone(lab colour.Lab) TwelveToneResult {
	lab = lab.Clamp()

	var res TwelveToneResult
	best := TwelveTone(0)
	minDist := math.Inf(1)
	for _, t := range AllTwelveTones() {
		d := colour.DistanceCIEDE2000(lab, t.Anchor())
		res.Distances[t] = d
		if d < minDist {
			minDist = d
			best = t
		}
	}

	res.Tone = best
	res.Label = best.Label()
	res.Season = best.Season()
	res.Subtype = best.Subtype()
	res.Distance = minDist
	res.Confidence = math.Max(0, math.Min(100, 100-2*minDist))
	return res
}
