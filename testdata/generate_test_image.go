// Test image generator for creating sample portraits for undertone classification.
// Run from the repository root: go run ./testdata/generate_test_image.go
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

type fixture struct {
	name string
	fill color.NRGBA
	// backdrop surrounds the fill, the way a plain studio wall surrounds a face.
	backdrop color.NRGBA
}

func main() {
	fixtures := []fixture{
		{name: "warm.png", fill: color.NRGBA{R: 230, G: 150, B: 100, A: 255}, backdrop: color.NRGBA{R: 250, G: 250, B: 250, A: 255}},
		{name: "cool.png", fill: color.NRGBA{R: 100, G: 120, B: 200, A: 255}, backdrop: color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
		{name: "neutral.png", fill: color.NRGBA{R: 160, G: 152, B: 150, A: 255}, backdrop: color.NRGBA{R: 10, G: 10, B: 10, A: 255}},
		{name: "backdrop.png", fill: color.NRGBA{R: 245, G: 245, B: 245, A: 255}, backdrop: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	for _, f := range fixtures {
		path := "testdata/" + f.name
		if err := imaging.Save(portrait(400, 400, f), path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Println("Test image created:", path)
	}
}

// portrait draws an ellipse of the fill colour with slight shading on the backdrop.
func portrait(width, height int, f fixture) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	cx, cy := float64(width)/2, float64(height)/2
	rx, ry := float64(width)*0.3, float64(height)*0.4

	for y := range height {
		for x := range width {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy > 1 {
				img.SetNRGBA(x, y, f.backdrop)
				continue
			}
			// Darken towards the bottom by up to 12 levels.
			shade := uint8(12 * y / height)
			img.SetNRGBA(x, y, color.NRGBA{
				R: f.fill.R - min(shade, f.fill.R),
				G: f.fill.G - min(shade, f.fill.G),
				B: f.fill.B - min(shade, f.fill.B),
				A: 255,
			})
		}
	}
	return img
}
