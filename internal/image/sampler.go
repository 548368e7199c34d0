package image

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/jmylchreest/undertone/pkg/colour"
)

// Region names the part of an image that is sampled.
type Region string

const (
	RegionFull        Region = "full"
	RegionCenter      Region = "center"
	RegionTopHalf     Region = "top-half"
	RegionBottomHalf  Region = "bottom-half"
	RegionLeftHalf    Region = "left-half"
	RegionRightHalf   Region = "right-half"
	RegionTopLeft     Region = "top-left"
	RegionTopRight    Region = "top-right"
	RegionBottomLeft  Region = "bottom-left"
	RegionBottomRight Region = "bottom-right"
)

// Regions returns every supported region.
func Regions() []Region {
	return []Region{
		RegionFull, RegionCenter,
		RegionTopHalf, RegionBottomHalf, RegionLeftHalf, RegionRightHalf,
		RegionTopLeft, RegionTopRight, RegionBottomLeft, RegionBottomRight,
	}
}

// ParseRegion parses a region name. An empty name selects RegionFull.
func ParseRegion(s string) (Region, error) {
	if s == "" {
		return RegionFull, nil
	}
	for _, r := range Regions() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region: %s (valid regions: %v)", s, Regions())
}

// Rect returns the sub-rectangle of bounds covered by the region. The center
// region is the middle half of each axis.
func (r Region) Rect(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	midX, midY := w/2, h/2

	var x1, y1, x2, y2 int
	switch r {
	case RegionTopLeft:
		x1, y1, x2, y2 = 0, 0, midX, midY
	case RegionTopRight:
		x1, y1, x2, y2 = midX, 0, w, midY
	case RegionBottomLeft:
		x1, y1, x2, y2 = 0, midY, midX, h
	case RegionBottomRight:
		x1, y1, x2, y2 = midX, midY, w, h
	case RegionTopHalf:
		x1, y1, x2, y2 = 0, 0, w, midY
	case RegionBottomHalf:
		x1, y1, x2, y2 = 0, midY, w, h
	case RegionLeftHalf:
		x1, y1, x2, y2 = 0, 0, midX, h
	case RegionRightHalf:
		x1, y1, x2, y2 = midX, 0, w, h
	case RegionCenter:
		qW, qH := w/4, h/4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return bounds
	}
	return image.Rect(x1, y1, x2, y2).Add(bounds.Min)
}

// DefaultMinAlpha is the opacity below which a pixel is skipped.
const DefaultMinAlpha = 128

// Sampler turns an image into a bounded pixel sample for classification.
type Sampler struct {
	// MaxDimension downscales the sampled region so neither side exceeds it.
	// 0 disables downscaling.
	MaxDimension int
	// MaxSamples caps the number of returned pixels. 0 returns every pixel.
	MaxSamples int
	// Region selects the part of the image to sample.
	Region Region
	// MinAlpha skips pixels that are more transparent than this.
	MinAlpha uint8
}

// NewSampler returns a full-image sampler with the given limits.
func NewSampler(maxDimension, maxSamples int) *Sampler {
	return &Sampler{
		MaxDimension: maxDimension,
		MaxSamples:   maxSamples,
		Region:       RegionFull,
		MinAlpha:     DefaultMinAlpha,
	}
}

// Sample crops img to the configured region, downscales it and returns an
// evenly spaced grid of opaque pixels.
func (s *Sampler) Sample(img image.Image) ([]colour.RGB, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	rect := s.Region.Rect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("region %s of a %dx%d image is empty", s.Region, img.Bounds().Dx(), img.Bounds().Dy())
	}

	src := imaging.Crop(img, rect)
	if s.MaxDimension > 0 {
		src = imaging.Fit(src, s.MaxDimension, s.MaxDimension, imaging.Box)
	}

	return s.samplePixels(src), nil
}

// samplePixels reads every pixel of small images and a regular grid of large ones.
func (s *Sampler) samplePixels(img *image.NRGBA) []colour.RGB {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	totalPixels := width * height

	step := 1
	if s.MaxSamples > 0 && totalPixels > s.MaxSamples {
		step = max(int(math.Ceil(math.Sqrt(float64(totalPixels)/float64(s.MaxSamples)))), 1)
	}

	capacity := totalPixels / (step * step)
	if s.MaxSamples > 0 {
		capacity = min(capacity, s.MaxSamples)
	}
	pixels := make([]colour.RGB, 0, capacity)

	for y := 0; y < height; y += step {
		for x := 0; x < width; x += step {
			c := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			if c.A < s.MinAlpha {
				continue
			}
			pixels = append(pixels, colour.ToRGB(c))
			if s.MaxSamples > 0 && len(pixels) >= s.MaxSamples {
				return pixels
			}
		}
	}

	return pixels
}
