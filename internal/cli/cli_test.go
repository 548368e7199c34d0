package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/jmylchreest/undertone/internal/config"
	"github.com/jmylchreest/undertone/pkg/colour"
	"github.com/jmylchreest/undertone/pkg/season"
	"github.com/jmylchreest/undertone/pkg/tone"
)

// run executes the command tree with args and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(config.Default(), nil)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeImage saves a w x h image with a border of bg around a fill of fg.
func writeImage(t *testing.T, path string, fg, bg color.NRGBA) {
	t.Helper()
	const w, h, border = 40, 30, 8
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := fg
			if x < border || y < border || x >= w-border || y >= h-border {
				c = bg
			}
			img.SetNRGBA(x, y, c)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to save %s: %v", path, err)
	}
}

var (
	peach = color.NRGBA{R: 230, G: 150, B: 100, A: 255}
	blue  = color.NRGBA{R: 100, G: 120, B: 200, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestClassifyCommandJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portrait.png")
	writeImage(t, path, peach, white)

	out, err := run(t, "classify", "--format", "json", path)
	if err != nil {
		t.Fatalf("classify error: %v", err)
	}

	var report Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if _, err := uuid.Parse(report.ID); err != nil {
		t.Errorf("report ID %q is not a UUID: %v", report.ID, err)
	}
	if report.Width != 40 || report.Height != 30 {
		t.Errorf("dimensions = %dx%d, want 40x30", report.Width, report.Height)
	}
	if report.Result.Tone != tone.Warm {
		t.Errorf("Tone = %s, want warm", report.Result.Tone)
	}
	if report.Result.BestSeason != season.Spring {
		t.Errorf("BestSeason = %s, want spring", report.Result.BestSeason)
	}
	if report.Result.DominantColor != (colour.RGB{R: 230, G: 150, B: 100}) {
		t.Errorf("DominantColor = %s, want the peach fill", report.Result.DominantColor)
	}
	if report.Result.BackgroundRatio <= 50 {
		t.Errorf("BackgroundRatio = %.1f, want the white border to dominate", report.Result.BackgroundRatio)
	}
}

func TestClassifyCommandDirectoryAndRegion(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), peach, white)
	writeImage(t, filepath.Join(dir, "b.png"), blue, white)

	out, err := run(t, "classify", "-f", "json", "--region", "center", "--keep-background", dir)
	if err != nil {
		t.Fatalf("classify error: %v", err)
	}

	var reports []Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if filepath.Base(reports[0].Path) != "a.png" || reports[0].Result.Tone != tone.Warm {
		t.Errorf("reports[0] = %s %s, want a.png warm", reports[0].Path, reports[0].Result.Tone)
	}
	if filepath.Base(reports[1].Path) != "b.png" || reports[1].Result.Tone != tone.Cool {
		t.Errorf("reports[1] = %s %s, want b.png cool", reports[1].Path, reports[1].Result.Tone)
	}
	if reports[0].Result.BackgroundRatio != 0 {
		t.Errorf("centre crop with --keep-background reported %.1f%% background", reports[0].Result.BackgroundRatio)
	}
	if reports[0].ID == reports[1].ID {
		t.Error("reports share an ID")
	}
}

func TestClassifyCommandText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swatch.png")
	writeImage(t, path, peach, white)

	out, err := run(t, "classify", "--preview=always", path)
	if err != nil {
		t.Fatalf("classify error: %v", err)
	}
	for _, want := range []string{"swatch.png", "tone         warm", "season       spring", "twelve-tone", ansiBgPrefix} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	plain, err := run(t, "classify", path)
	if err != nil {
		t.Fatalf("classify error: %v", err)
	}
	if strings.Contains(plain, "\033[") {
		t.Error("auto preview wrote ANSI codes to a non-terminal")
	}
}

func TestClassifyCommandErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.png")
	writeImage(t, path, peach, white)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing file", args: []string{"classify", filepath.Join(t.TempDir(), "nope.png")}, want: "not found"},
		{name: "bad region", args: []string{"classify", "--region", "forehead", path}, want: "unknown region"},
		{name: "bad calibration", args: []string{"classify", "--calibration", "martian", path}, want: "unknown calibration"},
		{name: "bad clusters", args: []string{"classify", "-k", "0", path}, want: "clusters"},
		{name: "bad format", args: []string{"classify", "--format", "xml", path}, want: "must be one of"},
		{name: "no args", args: []string{"classify"}, want: "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := run(t, "inspect", "#e69664")
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	for _, want := range []string{"#e69664", "rgb(230, 150, 100)", "tone         warm", "season       spring"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "inspect", "100,120,200", "--format", "json")
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	var info Inspection
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if info.Tone.Tone != tone.Cool || info.TwelveTone.Season.Undertone() != tone.Cool {
		t.Errorf("inspect 100,120,200 = %s / %s, want cool", info.Tone.Tone, info.TwelveTone.Season)
	}
	if info.LCh.C <= 0 || info.Calibration != tone.DefaultCalibrationName {
		t.Errorf("unexpected inspection: %+v", info)
	}

	if _, err := run(t, "inspect", "not-a-colour"); err == nil {
		t.Error("inspect not-a-colour expected error")
	}
}

func TestDistanceCommand(t *testing.T) {
	out, err := run(t, "distance", "#e69664", "230,150,100")
	if err != nil {
		t.Fatalf("distance error: %v", err)
	}
	if !strings.Contains(out, "ciede2000      0.0000") || !strings.Contains(out, "compatibility  100") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "distance", "-f", "json", "#e69664", "#6478c8")
	if err != nil {
		t.Fatalf("distance error: %v", err)
	}
	var d Distance
	if err := json.Unmarshal([]byte(out), &d); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if d.CIEDE2000 <= 0 || d.CIE76 <= d.CIEDE2000 {
		t.Errorf("distance = %+v, want CIE76 > CIEDE2000 > 0", d)
	}
	if d.Compatibility != 30 {
		t.Errorf("Compatibility = %d, want 30 for warm vs cool", d.Compatibility)
	}
}

func TestTonesCommand(t *testing.T) {
	out, err := run(t, "tones")
	if err != nil {
		t.Fatalf("tones error: %v", err)
	}
	for _, tt := range season.AllTwelveTones() {
		if !strings.Contains(out, tt.String()) {
			t.Errorf("tones output missing %s", tt)
		}
	}

	out, err = run(t, "tones", "--format", "json")
	if err != nil {
		t.Fatalf("tones error: %v", err)
	}
	var tones []ToneInfo
	if err := json.Unmarshal([]byte(out), &tones); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(tones) != 12 || tones[0].ID != "light-spring" {
		t.Errorf("tones JSON = %+v", tones)
	}

	out, err = run(t, "tones", "--calibrations")
	if err != nil {
		t.Fatalf("tones error: %v", err)
	}
	for _, want := range append(tone.CalibrationNames(), tone.CalibrationVersion) {
		if !strings.Contains(out, want) {
			t.Errorf("calibration output missing %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.HasPrefix(out, "undertone version") {
		t.Errorf("version output = %q", out)
	}
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	cmd := newRootCmd(config.Default(), errors.New("UNDERTONE_K: bad"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"tones"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Execute() error = %v, want invalid configuration", err)
	}

	if _, err := run(t, "--log-level", "shouty", "tones"); err == nil {
		t.Error("invalid --log-level expected error")
	}
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in      string
		want    colour.RGB
		wantErr bool
	}{
		{in: "#e69664", want: colour.RGB{R: 230, G: 150, B: 100}},
		{in: "E69664", want: colour.RGB{R: 230, G: 150, B: 100}},
		{in: "#fff", want: colour.RGB{R: 255, G: 255, B: 255}},
		{in: "230,150,100", want: colour.RGB{R: 230, G: 150, B: 100}},
		{in: "rgb(1, 2, 3)", want: colour.RGB{R: 1, G: 2, B: 3}},
		{in: "1,2", wantErr: true},
		{in: "1,2,300", wantErr: true},
		{in: "a,b,c", wantErr: true},
		{in: "#12345", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseColour(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseColour(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseColour(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPreviewHelpers(t *testing.T) {
	if previewAuto.enabled(&bytes.Buffer{}) {
		t.Error("auto preview enabled for a buffer")
	}
	if !previewAlways.enabled(&bytes.Buffer{}) || previewNever.enabled(&bytes.Buffer{}) {
		t.Error("always/never preview modes not honoured")
	}

	dark := swatchWithText(colour.RGB{R: 20, G: 20, B: 60}, "hi", 6)
	if !strings.Contains(dark, ansiFgPrefix+"255;255;255") || visibleWidth(dark) != 6 {
		t.Errorf("swatchWithText(dark) = %q", dark)
	}
	light := swatchWithText(colour.RGB{R: 250, G: 240, B: 200}, "toolongtext", 4)
	if !strings.Contains(light, ansiFgPrefix+"0;0;0") || visibleWidth(light) != 4 {
		t.Errorf("swatchWithText(light) = %q", light)
	}
	if visibleWidth(swatch(colour.RGB{}, 0)) != swatchWidth {
		t.Error("swatch default width not applied")
	}
}
