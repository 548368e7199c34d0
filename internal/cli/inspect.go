package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/pkg/colour"
	"github.com/jmylchreest/undertone/pkg/season"
	"github.com/jmylchreest/undertone/pkg/tone"
)

// HSL is a colour in hue (degrees), saturation and lightness (0-1).
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// LCh is a Lab colour in cylindrical form.
type LCh struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// Inspection describes a single colour.
type Inspection struct {
	RGB         colour.RGB              `json:"rgb"`
	Hex         string                  `json:"hex"`
	Lab         colour.Lab              `json:"lab"`
	LabD50      colour.Lab              `json:"lab_d50"`
	LCh         LCh                     `json:"lch"`
	HSL         HSL                     `json:"hsl"`
	Calibration string                  `json:"calibration"`
	Tone        tone.Result             `json:"tone"`
	WarmRatio   float64                 `json:"warm_ratio"`
	Seasons     season.Scores           `json:"seasons"`
	BestSeason  season.Season           `json:"best_season"`
	Grade       season.Grade            `json:"grade"`
	TwelveTone  season.TwelveToneResult `json:"twelve_tone"`
}

// inspectColour runs every classifier over a single colour.
func inspectColour(c colour.RGB, cal tone.Calibration) Inspection {
	lab := colour.RGBToLab(c)
	l, ch, h := lab.LCh()
	hh, hs, hl := c.HSL()
	classifier := tone.NewClassifier(cal)
	scores := season.Match(lab)
	best := season.Best(scores)

	return Inspection{
		RGB:         c,
		Hex:         c.Hex(),
		Lab:         lab,
		LabD50:      colour.RGBToLabD50(c),
		LCh:         LCh{L: l, C: ch, H: h},
		HSL:         HSL{H: hh, S: hs, L: hl},
		Calibration: cal.Name,
		Tone:        classifier.ClassifyWithConfidence(lab),
		WarmRatio:   classifier.WarmRatio(lab),
		Seasons:     scores,
		BestSeason:  best,
		Grade:       season.GradeFor(scores.Get(best)),
		TwelveTone:  season.ClassifyTwelveTone(lab),
	}
}

func newInspectCmd(a *app) *cobra.Command {
	var calibration string
	var format, preview *enumValue

	cmd := &cobra.Command{
		Use:   "inspect <colour>",
		Short: "Show the colour spaces, undertone and season of a colour",
		Long: `Inspect converts a colour to Lab, LCh and HSL and classifies it exactly as the
dominant colour of an image would be classified.

Colours are given as hex (#e69664, e96) or as r,g,b channels (230,150,100).

Examples:
  undertone inspect '#e69664'
  undertone inspect 100,120,200 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseColour(args[0])
			if err != nil {
				return err
			}
			cal, err := tone.ParseCalibration(calibration)
			if err != nil {
				return err
			}

			info := inspectColour(c, cal)
			a.logger.Debug("inspected colour", "hex", info.Hex, "tone", info.Tone.Tone)

			out := cmd.OutOrStdout()
			if format.String() == formatJSON {
				return writeIndentedJSON(out, info)
			}
			writeInspection(out, info, previewMode(preview.String()).enabled(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&calibration, "calibration", a.cfg.Calibration, "population calibration profile")
	format = addFormatFlag(cmd.Flags())
	preview = addPreviewFlag(cmd.Flags())

	return cmd
}

func writeInspection(w io.Writer, info Inspection, preview bool) {
	head := info.Hex
	if preview {
		head = swatchWithText(info.RGB, info.Hex, 10)
	}
	fmt.Fprintf(w, "%s  %s\n", head, info.RGB)
	fmt.Fprintf(w, "  lab          %s\n", info.Lab)
	fmt.Fprintf(w, "  lab (D50)    %s\n", info.LabD50)
	fmt.Fprintf(w, "  lch          %.2f, %.2f, %.1f°\n", info.LCh.L, info.LCh.C, info.LCh.H)
	fmt.Fprintf(w, "  hsl          %.1f°, %.1f%%, %.1f%%\n", info.HSL.H, info.HSL.S*100, info.HSL.L*100)
	fmt.Fprintf(w, "  tone         %s (%.1f%%, warm ratio %.1f, calibration %s)\n",
		info.Tone.Tone, info.Tone.Confidence, info.WarmRatio, info.Calibration)
	fmt.Fprintf(w, "  season       %s (%.1f, %s)\n", info.BestSeason, info.Seasons.Get(info.BestSeason), info.Grade)
	fmt.Fprintf(w, "  scores       %s\n", formatScores(info.Seasons))
	fmt.Fprintf(w, "  twelve-tone  %s (distance %.2f, confidence %.1f)\n",
		info.TwelveTone.Label, info.TwelveTone.Distance, info.TwelveTone.Confidence)
}
