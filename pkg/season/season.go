// Package season scores Lab colours against seasonal colour-analysis references:
// the classic four seasons and the twelve-tone subdivision.
package season

import (
	"fmt"
	"math"

	"github.com/jmylchreest/undertone/pkg/colour"
	"github.com/jmylchreest/undertone/pkg/tone"
)

// Season is one of the four colour-analysis seasons.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// AllSeasons returns the four seasons in canonical order.
func AllSeasons() []Season {
	return []Season{Spring, Summer, Autumn, Winter}
}

// ParseSeason parses a season name.
func ParseSeason(s string) (Season, error) {
	for _, season := range AllSeasons() {
		if string(season) == s {
			return season, nil
		}
	}
	return "", fmt.Errorf("unknown season: %s (valid seasons: %v)", s, AllSeasons())
}

// String returns the season name.
func (s Season) String() string {
	return string(s)
}

// Undertone returns the undertone group of the season: spring and autumn are
// warm, summer and winter are cool.
func (s Season) Undertone() tone.Tone {
	switch s {
	case Spring, Autumn:
		return tone.Warm
	case Summer, Winter:
		return tone.Cool
	default:
		return tone.Neutral
	}
}

// Anchor returns the reference Lab colour used when scoring against s.
func Anchor(s Season) colour.Lab {
	switch s {
	case Spring:
		// Light, warm and clear.
		return colour.Lab{L: 75, A: 15, B: 40}
	case Summer:
		// Light, cool and soft.
		return colour.Lab{L: 72, A: 8, B: -12}
	case Autumn:
		// Deep, warm and muted.
		return colour.Lab{L: 50, A: 20, B: 38}
	case Winter:
		// Deep, cool and clear.
		return colour.Lab{L: 35, A: 10, B: -30}
	default:
		return colour.Lab{}
	}
}

// Scores holds a 0-100 match score per season.
type Scores struct {
	Spring float64 `json:"spring"`
	Summer float64 `json:"summer"`
	Autumn float64 `json:"autumn"`
	Winter float64 `json:"winter"`

	// distances holds the unclamped anchor distances in canonical season order.
	// It is only set by Match.
	distances [4]float64
	measured  bool
}

// Get returns the score for a season.
func (s Scores) Get(season Season) float64 {
	switch season {
	case Spring:
		return s.Spring
	case Summer:
		return s.Summer
	case Autumn:
		return s.Autumn
	case Winter:
		return s.Winter
	default:
		return 0
	}
}

// Match scores lab against each season's anchor as 100 - min(CIE76 distance, 100).
func Match(lab colour.Lab) Scores {
	lab = lab.Clamp()
	var d [4]float64
	for i, s := range AllSeasons() {
		d[i] = colour.DistanceCIE76(lab, Anchor(s))
	}
	score := func(i int) float64 {
		return 100 - math.Min(d[i], 100)
	}
	return Scores{
		Spring:    score(0),
		Summer:    score(1),
		Autumn:    score(2),
		Winter:    score(3),
		distances: d,
		measured:  true,
	}
}

// Best returns the season with the highest score. Equal scores, including a
// colour too far from every anchor to score at all, go to the season whose
// anchor is nearest when the scores came from Match, and otherwise resolve in
// canonical season order.
func Best(scores Scores) Season {
	seasons := AllSeasons()
	best := 0
	for i := 1; i < len(seasons); i++ {
		got, top := scores.Get(seasons[i]), scores.Get(seasons[best])
		switch {
		case got > top:
			best = i
		case got == top && scores.measured && scores.distances[i] < scores.distances[best]:
			best = i
		}
	}
	return seasons[best]
}

// Compatibility returns how well two seasons combine: 100 for the same season,
// 70 for seasons sharing an undertone, 30 for opposite undertones.
func Compatibility(a, b Season) int {
	switch {
	case a == b:
		return 100
	case a.Undertone() == b.Undertone():
		return 70
	default:
		return 30
	}
}
