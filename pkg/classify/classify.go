// Package classify runs the full colour classification pipeline: background
// filtering, dominant colour extraction, undertone and season matching, and an
// overall confidence that accounts for how uniform the sample was.
package classify

import (
	"encoding/json"
	"math"

	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/stat"

	"github.com/jmylchreest/undertone/pkg/colour"
	"github.com/jmylchreest/undertone/pkg/season"
	"github.com/jmylchreest/undertone/pkg/tone"
)

const (
	// classWeight is the share of the overall confidence taken by the tone and
	// season classification; the rest comes from sample homogeneity.
	classWeight = 0.6

	// maxSpreadDistance is the mean Lab distance at which a sample counts as
	// fully dispersed.
	maxSpreadDistance = 100.0

	// degradedPenalty scales the confidence when the background fallback was used.
	degradedPenalty = 0.5
)

// Options configures a Classifier. The zero value uses the package defaults.
type Options struct {
	// K is the number of clusters sought by k-means.
	K int
	// Iterations caps the k-means rounds.
	Iterations int
	// Workers bounds the goroutines used by k-means assignment.
	Workers int
	// Calibration shifts the warm/cool boundary. Nil uses the default profile.
	Calibration *tone.Calibration
	// Background tunes the backdrop heuristic. Nil uses the default thresholds.
	Background *colour.BackgroundThresholds
	// KeepBackground disables background filtering entirely.
	KeepBackground bool
	// Logger receives debug traces. Nil discards them.
	Logger hclog.Logger
}

// ClusterSummary describes one k-means cluster of the analysed pixels.
type ClusterSummary struct {
	Color colour.RGB `json:"rgb"`
	Hex   string     `json:"hex"`
	Count int        `json:"count"`
	Share float64    `json:"share"`
	Tone  tone.Tone  `json:"tone"`
}

// Result is the composite outcome of classifying a pixel sample.
type Result struct {
	DominantColor  colour.RGB    `json:"dominant_color"`
	Hex            string        `json:"hex"`
	DominantLab    colour.Lab    `json:"dominant_lab"`
	Tone           tone.Tone     `json:"tone"`
	ToneConfidence float64       `json:"tone_confidence"`
	WarmRatio      float64       `json:"warm_ratio"`
	SeasonMatch    season.Scores `json:"season_match"`
	BestSeason     season.Season `json:"best_season,omitempty"`
	Grade          season.Grade  `json:"grade,omitempty"`

	TwelveTone *season.TwelveToneResult `json:"twelve_tone,omitempty"`

	// Confidence is the overall 0-100 confidence of the classification. A flat
	// sample scores at least 40 from homogeneity alone, so it outranks a
	// dispersed one even when its season match is weak. Degraded results are
	// halved, which puts a uniform backdrop below most genuine samples.
	Confidence float64 `json:"confidence"`
	// Homogeneity is 1 for a single flat colour and falls towards 0 as the
	// sample spreads across many distant colours.
	Homogeneity float64 `json:"homogeneity"`
	// Spread is the standard deviation of the Lab distances from each analysed
	// pixel to the dominant colour.
	Spread float64 `json:"spread"`

	Clusters        []ClusterSummary `json:"clusters"`
	BackgroundRatio float64          `json:"background_ratio"`
	SampleCount     int              `json:"sample_count"`
	AnalysedCount   int              `json:"analysed_count"`
	Calibration     string           `json:"calibration"`

	// Degraded is set when every pixel looked like background and the
	// unfiltered sample had to be used instead.
	Degraded bool `json:"degraded"`
}

// ToJSON converts the result to indented JSON.
func (r Result) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Classifier classifies pixel samples. It holds only read-only configuration and
// is safe for concurrent use.
type Classifier struct {
	kmeans     colour.KMeansOptions
	tone       tone.Classifier
	background colour.BackgroundThresholds
	filter     bool
	logger     hclog.Logger
}

// New returns a Classifier configured by opts.
func New(opts Options) *Classifier {
	cal := tone.DefaultCalibration()
	if opts.Calibration != nil {
		cal = *opts.Calibration
	}

	bg := colour.DefaultBackgroundThresholds()
	if opts.Background != nil {
		bg = *opts.Background
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Classifier{
		kmeans: colour.KMeansOptions{
			K:          opts.K,
			Iterations: opts.Iterations,
			Workers:    opts.Workers,
		},
		tone:       tone.NewClassifier(cal),
		background: bg,
		filter:     !opts.KeepBackground,
		logger:     logger.Named("classify"),
	}
}

// FromPixels classifies pixels with a one-off Classifier built from opts.
func FromPixels(pixels []colour.RGB, opts Options) Result {
	return New(opts).Classify(pixels)
}

// Classify runs the pipeline over pixels. An empty sample yields a neutral
// result with zero confidence.
func (c *Classifier) Classify(pixels []colour.RGB) Result {
	result := Result{
		Tone:        tone.Neutral,
		Clusters:    []ClusterSummary{},
		SampleCount: len(pixels),
		Calibration: c.tone.Calibration.Name,
	}
	if len(pixels) == 0 {
		c.logger.Debug("empty sample")
		return result
	}

	analysed := pixels
	if c.filter {
		result.BackgroundRatio = c.background.BackgroundRatio(pixels)
		analysed = c.background.FilterBackground(pixels)
		if len(analysed) == 0 {
			c.logger.Debug("every pixel matched the background heuristic, using unfiltered sample",
				"samples", len(pixels))
			analysed = pixels
			result.Degraded = true
		}
	}
	result.AnalysedCount = len(analysed)

	clusters := colour.KMeans(analysed, c.kmeans)
	c.logger.Debug("clustered sample",
		"samples", len(pixels),
		"analysed", len(analysed),
		"background_ratio", result.BackgroundRatio,
		"clusters", len(clusters))

	dominant := clusters[0]
	lab := colour.RGBToLab(dominant.Centroid)

	toneResult := c.tone.ClassifyWithConfidence(lab)
	scores := season.Match(lab)
	best := season.Best(scores)
	twelve := season.ClassifyTwelveTone(lab)

	result.DominantColor = dominant.Centroid
	result.Hex = dominant.Centroid.Hex()
	result.DominantLab = lab
	result.Tone = toneResult.Tone
	result.ToneConfidence = toneResult.Confidence
	result.WarmRatio = c.tone.WarmRatio(lab)
	result.SeasonMatch = scores
	result.BestSeason = best
	result.Grade = season.GradeFor(scores.Get(best))
	result.TwelveTone = &twelve
	result.Clusters = c.summarise(clusters, len(analysed))

	mean, spread := labSpread(analysed, lab)
	share := float64(dominant.Count) / float64(len(analysed))
	result.Spread = spread
	result.Homogeneity = share * (1 - math.Min(mean, maxSpreadDistance)/maxSpreadDistance)

	classConf := (toneResult.Confidence + scores.Get(best)) / 2
	confidence := classWeight*classConf + (1-classWeight)*100*result.Homogeneity
	if result.Degraded {
		confidence *= degradedPenalty
	}
	result.Confidence = math.Max(0, math.Min(100, confidence))

	c.logger.Debug("classified sample",
		"dominant", result.Hex,
		"tone", result.Tone,
		"season", best,
		"twelve_tone", twelve.Tone,
		"homogeneity", result.Homogeneity,
		"confidence", result.Confidence)

	return result
}

func (c *Classifier) summarise(clusters []colour.Cluster, total int) []ClusterSummary {
	out := make([]ClusterSummary, len(clusters))
	for i, cl := range clusters {
		out[i] = ClusterSummary{
			Color: cl.Centroid,
			Hex:   cl.Centroid.Hex(),
			Count: cl.Count,
			Share: float64(cl.Count) / float64(total),
			Tone:  c.tone.Classify(colour.RGBToLab(cl.Centroid)),
		}
	}
	return out
}

// labSpread returns the mean and standard deviation of the CIE76 distances from
// every pixel to ref. Lab values are cached per distinct colour.
func labSpread(pixels []colour.RGB, ref colour.Lab) (mean, std float64) {
	cache := make(map[colour.RGB]float64)
	dists := make([]float64, len(pixels))
	for i, p := range pixels {
		d, ok := cache[p]
		if !ok {
			d = colour.DistanceCIE76(colour.RGBToLab(p), ref)
			cache[p] = d
		}
		dists[i] = d
	}
	if len(dists) < 2 {
		return stat.Mean(dists, nil), 0
	}
	return stat.MeanStdDev(dists, nil)
}
