package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/pkg/colour"
	"github.com/jmylchreest/undertone/pkg/season"
)

// Distance compares two colours.
type Distance struct {
	From          colour.RGB `json:"from"`
	To            colour.RGB `json:"to"`
	CIE76         float64    `json:"cie76"`
	CIEDE2000     float64    `json:"ciede2000"`
	ContrastRatio float64    `json:"contrast_ratio"`
	// Compatibility is the seasonal compatibility (100, 70 or 30) of the two
	// colours' best matching seasons.
	Compatibility int `json:"compatibility"`
}

func measureDistance(x, y colour.RGB) Distance {
	lx, ly := colour.RGBToLab(x), colour.RGBToLab(y)
	sx := season.Best(season.Match(lx))
	sy := season.Best(season.Match(ly))
	return Distance{
		From:          x,
		To:            y,
		CIE76:         colour.DistanceCIE76(lx, ly),
		CIEDE2000:     colour.DistanceCIEDE2000(lx, ly),
		ContrastRatio: colour.ContrastRatio(x, y),
		Compatibility: season.Compatibility(sx, sy),
	}
}

func newDistanceCmd(a *app) *cobra.Command {
	var format *enumValue

	cmd := &cobra.Command{
		Use:   "distance <colour> <colour>",
		Short: "Measure the perceptual distance between two colours",
		Long: `Distance reports the CIE76 and CIEDE2000 differences, the WCAG contrast ratio
and the seasonal compatibility of two colours.

Examples:
  undertone distance '#e69664' '#6478c8'
  undertone distance 230,150,100 228,152,98`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseColour(args[0])
			if err != nil {
				return err
			}
			y, err := parseColour(args[1])
			if err != nil {
				return err
			}

			d := measureDistance(x, y)
			a.logger.Debug("measured distance", "from", x.Hex(), "to", y.Hex(), "ciede2000", d.CIEDE2000)

			out := cmd.OutOrStdout()
			if format.String() == formatJSON {
				return writeIndentedJSON(out, d)
			}
			fmt.Fprintf(out, "%s -> %s\n", x.Hex(), y.Hex())
			fmt.Fprintf(out, "  cie76          %.4f\n", d.CIE76)
			fmt.Fprintf(out, "  ciede2000      %.4f\n", d.CIEDE2000)
			fmt.Fprintf(out, "  contrast       %.2f:1\n", d.ContrastRatio)
			fmt.Fprintf(out, "  compatibility  %d\n", d.Compatibility)
			return nil
		},
	}

	format = addFormatFlag(cmd.Flags())
	return cmd
}

func writeIndentedJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
