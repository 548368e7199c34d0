package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/undertone/pkg/colour"
	"github.com/jmylchreest/undertone/pkg/season"
	"github.com/jmylchreest/undertone/pkg/tone"
)

// ToneInfo describes one reference tone.
type ToneInfo struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Season  season.Season  `json:"season"`
	Subtype season.Subtype `json:"subtype"`
	Anchor  colour.Lab     `json:"anchor"`
	Hex     string         `json:"hex"`
}

func referenceTones() []ToneInfo {
	tones := season.AllTwelveTones()
	out := make([]ToneInfo, len(tones))
	for i, t := range tones {
		out[i] = ToneInfo{
			ID:      t.String(),
			Label:   t.Label(),
			Season:  t.Season(),
			Subtype: t.Subtype(),
			Anchor:  t.Anchor(),
			Hex:     colour.LabToRGB(t.Anchor()).Hex(),
		}
	}
	return out
}

func newTonesCmd(a *app) *cobra.Command {
	var calibrations bool
	var format, preview *enumValue

	cmd := &cobra.Command{
		Use:   "tones",
		Short: "List the reference tones or calibration profiles",
		Long: `Tones lists the twelve seasonal reference tones with their Lab anchors.
With --calibrations it lists the population calibration profiles instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			a.logger.Debug("listing reference data", "calibrations", calibrations)

			if calibrations {
				if format.String() == formatJSON {
					return writeIndentedJSON(out, tone.Calibrations())
				}
				writeCalibrationTable(out)
				return nil
			}

			if format.String() == formatJSON {
				return writeIndentedJSON(out, referenceTones())
			}
			writeToneTable(out, previewMode(preview.String()).enabled(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&calibrations, "calibrations", false, "list calibration profiles instead of tones")
	format = addFormatFlag(cmd.Flags())
	preview = addPreviewFlag(cmd.Flags())

	return cmd
}

func writeToneTable(w io.Writer, preview bool) {
	headers := []string{"Tone", "Label", "Season", "Subtype", "L", "a", "b", "Hex"}
	if preview {
		headers = append(headers, "Swatch")
	}

	table := NewTable(headers)
	table.AlignRight(4, 5, 6)
	for _, t := range referenceTones() {
		row := []string{
			t.ID, t.Label, t.Season.String(), string(t.Subtype),
			fmt.Sprintf("%.0f", t.Anchor.L), fmt.Sprintf("%.0f", t.Anchor.A), fmt.Sprintf("%.0f", t.Anchor.B),
			t.Hex,
		}
		if preview {
			rgb, _ := colour.HexToRGB(t.Hex)
			row = append(row, swatch(rgb, swatchWidth))
		}
		table.AddRow(row)
	}
	fmt.Fprint(w, table.Render())
}

func writeCalibrationTable(w io.Writer) {
	table := NewTable([]string{"Name", "a* offset", "b* offset", "Deadband", "Description"})
	table.SetColumnMaxWidth(4, 48)
	table.AlignRight(1, 2, 3)
	for _, c := range tone.Calibrations() {
		table.AddRow([]string{
			c.Name,
			fmt.Sprintf("%.1f", c.AOffset),
			fmt.Sprintf("%.1f", c.BOffset),
			fmt.Sprintf("%.1f", c.Deadband),
			c.Description,
		})
	}
	fmt.Fprintf(w, "Calibration table %s\n\n", tone.CalibrationVersion)
	fmt.Fprint(w, table.Render())
}
